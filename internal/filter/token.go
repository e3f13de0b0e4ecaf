// Package filter implements the lexer and parser for sieve filter expressions.
//
// A filter is a set of comparisons joined by boolean operators:
//
//	name = "value" & (age >= 21 | nickname != "bob")
package filter

// Kind classifies a lexical token.
type Kind int

const (
	KindName Kind = iota
	KindParen
	KindComparator
	KindString
	KindNumber
	KindJoinType
	KindError
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindName:
		return "NAME"
	case KindParen:
		return "PAREN"
	case KindComparator:
		return "COMPARATOR"
	case KindString:
		return "STRING"
	case KindNumber:
		return "NUMBER"
	case KindJoinType:
		return "JOIN"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Comparator is a comparison operator.
type Comparator int

const (
	Equal Comparator = iota
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
)

func (c Comparator) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	default:
		return "?"
	}
}

// JoinType is a boolean join operator. Values are ordered by precedence,
// lowest first.
type JoinType int

const (
	Or JoinType = iota
	And
	Xor
)

func (j JoinType) String() string {
	switch j {
	case Or:
		return "|"
	case And:
		return "&"
	case Xor:
		return "^"
	default:
		return "?"
	}
}

// Token is a classified half-open byte range [Start, End) of the input.
type Token struct {
	Kind    Kind
	Start   int
	End     int
	Line    int // 1-based line of Start
	Col     int // 1-based column of Start
	Literal string

	// Set for KindComparator and KindJoinType tokens.
	Comparator Comparator
	Join       JoinType
}

// Len returns the byte length of the token.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsOpenParen reports whether the token is "(".
func (t Token) IsOpenParen() bool {
	return t.Kind == KindParen && t.Literal == "("
}

// IsCloseParen reports whether the token is ")".
func (t Token) IsCloseParen() bool {
	return t.Kind == KindParen && t.Literal == ")"
}

// Result is the output of a lexing pass. Diagnostics never block rendering.
type Result struct {
	Tokens      []Token
	Diagnostics []string
}

// HasErrors reports whether the lexer produced any diagnostics.
func (r Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}
