package filterinput

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Caret motions work on raw text byte offsets and always land on grapheme
// cluster boundaries.

// prevGrapheme returns the start of the grapheme cluster ending at pos.
func prevGrapheme(s string, pos int) int {
	prev := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, end := g.Positions()
		if end >= pos {
			return start
		}
		prev = end
	}
	return prev
}

// nextGrapheme returns the end of the grapheme cluster starting at pos.
func nextGrapheme(s string, pos int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, end := g.Positions()
		if end > pos {
			return end
		}
	}
	return len(s)
}

// nextWordEnd skips non-word characters, then word characters.
func nextWordEnd(s string, pos int) int {
	n := len(s)
	for pos < n {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if isWordChar(r) {
			break
		}
		pos += size
	}
	for pos < n {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !isWordChar(r) {
			break
		}
		pos += size
	}
	return pos
}

// prevWordStart skips non-word characters backward, then word characters.
func prevWordStart(s string, pos int) int {
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:pos])
		if isWordChar(r) {
			break
		}
		pos -= size
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:pos])
		if !isWordChar(r) {
			break
		}
		pos -= size
	}
	return pos
}

// isWordChar reports letters, digits, underscore, and combining marks, so a
// word motion never splits an accented letter.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_'
}

func lineStart(s string, pos int) int {
	return strings.LastIndexByte(s[:pos], '\n') + 1
}

func lineEnd(s string, pos int) int {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(s)
}
