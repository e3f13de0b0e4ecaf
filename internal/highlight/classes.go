// Package highlight builds styled document trees from raw filter text and a
// token stream, and paints them for the terminal.
package highlight

import "github.com/zjrosen/sieve/internal/filter"

// Style classes attached to runs. Plain runs carry ClassPlain.
const (
	ClassPlain      = ""
	ClassName       = "name"
	ClassComparator = "comparator"
	ClassString     = "string"
	ClassNumber     = "number"
	ClassJoin       = "join"
	ClassInvalid    = "invalid"

	// ClassSurface is the class of the root container.
	ClassSurface = "surface"
)

// ClassMap maps token kinds to style classes.
type ClassMap struct {
	// InvalidClass styles KindError tokens with ClassInvalid. When false
	// they render with the plain class.
	InvalidClass bool
}

// DefaultClassMap returns the mapping with invalid-token styling enabled.
func DefaultClassMap() ClassMap {
	return ClassMap{InvalidClass: true}
}

// Class returns the style class for a token kind. Unknown kinds map to the
// plain class.
func (m ClassMap) Class(kind filter.Kind) string {
	switch kind {
	case filter.KindName:
		return ClassName
	case filter.KindParen, filter.KindComparator:
		return ClassComparator
	case filter.KindString:
		return ClassString
	case filter.KindNumber:
		return ClassNumber
	case filter.KindJoinType:
		return ClassJoin
	case filter.KindError:
		if m.InvalidClass {
			return ClassInvalid
		}
		return ClassPlain
	default:
		return ClassPlain
	}
}
