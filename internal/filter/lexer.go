package filter

import (
	"fmt"
	"unicode/utf8"
)

// Lexer tokenizes filter input. It never fails: malformed input becomes
// KindError tokens plus diagnostics.
type Lexer struct {
	input string
	pos   int // byte offset of the next unread rune
	line  int
	col   int

	diagnostics []string
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Lex tokenizes the whole input.
func Lex(input string) Result {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return Result{Tokens: tokens, Diagnostics: l.diagnostics}
}

// Diagnostics returns the messages collected so far.
func (l *Lexer) Diagnostics() []string {
	return l.diagnostics
}

// NextToken returns the next token, or false at end of input.
func (l *Lexer) NextToken() (Token, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	tok := Token{Start: l.pos, Line: l.line, Col: l.col}
	ch := l.input[l.pos]

	switch {
	case ch == '"':
		l.readString(&tok)
	case isLetter(ch):
		l.readName(&tok)
	case isDigit(ch) || (ch == '-' && isDigit(l.peekByte(1))):
		l.readNumber(&tok)
	case ch == '(' || ch == ')':
		l.advance()
		tok.Kind = KindParen
	case ch == '|' || ch == '&' || ch == '^':
		l.advance()
		tok.Kind = KindJoinType
		tok.Join = joinFor(ch)
	case ch == '=' || ch == '<' || ch == '>' || ch == '!':
		l.readComparator(&tok)
	default:
		r := l.advance()
		tok.Kind = KindError
		l.errorf("unexpected character %q at %d:%d", r, tok.Line, tok.Col)
	}

	tok.End = l.pos
	if tok.Kind != KindString {
		tok.Literal = l.input[tok.Start:tok.End]
	}
	return tok, true
}

func joinFor(ch byte) JoinType {
	switch ch {
	case '&':
		return And
	case '^':
		return Xor
	default:
		return Or
	}
}

func (l *Lexer) readComparator(tok *Token) {
	tok.Kind = KindComparator
	ch := l.input[l.pos]
	l.advance()
	hasEq := l.peekByte(0) == '='

	switch ch {
	case '=':
		tok.Comparator = Equal
	case '<':
		tok.Comparator = LessThan
		if hasEq {
			l.advance()
			tok.Comparator = LessThanOrEqual
		}
	case '>':
		tok.Comparator = GreaterThan
		if hasEq {
			l.advance()
			tok.Comparator = GreaterThanOrEqual
		}
	case '!':
		if !hasEq {
			tok.Kind = KindError
			if l.pos >= len(l.input) {
				l.errorf("unexpected end of filter after '!' at %d:%d", tok.Line, tok.Col)
			} else {
				l.errorf("expected '=' after '!' at %d:%d", tok.Line, tok.Col)
			}
			return
		}
		l.advance()
		tok.Comparator = NotEqual
	}
}

// readString reads a double-quoted value. The literal excludes the quotes;
// the token span includes them.
func (l *Lexer) readString(tok *Token) {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.advance()
	}
	if l.pos >= len(l.input) {
		tok.Kind = KindError
		l.errorf("unterminated string starting at %d:%d", tok.Line, tok.Col)
		return
	}
	tok.Kind = KindString
	tok.Literal = l.input[start:l.pos]
	l.advance() // closing quote
}

func (l *Lexer) readName(tok *Token) {
	tok.Kind = KindName
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.advance()
	}
}

// readNumber reads an optionally negative integer or decimal.
func (l *Lexer) readNumber(tok *Token) {
	tok.Kind = KindNumber
	if l.input[l.pos] == '-' {
		l.advance()
	}
	for isDigit(l.peekByte(0)) {
		l.advance()
	}
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		l.advance()
		for isDigit(l.peekByte(0)) {
			l.advance()
		}
	}
}

// advance consumes one rune and tracks line and column.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// peekByte returns the byte n positions ahead without advancing.
func (l *Lexer) peekByte(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) errorf(format string, args ...any) {
	l.diagnostics = append(l.diagnostics, fmt.Sprintf(format, args...))
}

// isLetter returns true if c is a letter or underscore.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isDigit returns true if c is a digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
