package filter

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned for any malformed filter.
var ErrSyntax = errors.New("syntax error")

func syntaxErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// Parse lexes and parses the input into a Search. An empty filter parses
// to an empty And search.
func Parse(input string) (*Search, error) {
	res := Lex(input)
	if res.HasErrors() {
		return nil, syntaxErr("%s", res.Diagnostics[0])
	}
	return ParseTokens(res.Tokens)
}

// ParseTokens parses an already lexed token list.
func ParseTokens(tokens []Token) (*Search, error) {
	postfix, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}

	b := &builder{tokens: postfix}
	root, err := b.build()
	if err != nil {
		return nil, err
	}
	if len(b.tokens) > 0 {
		extra := b.tokens[len(b.tokens)-1]
		return nil, syntaxErr("unexpected %q at %d:%d, expected a join operator", extra.Literal, extra.Line, extra.Col)
	}

	switch v := root.(type) {
	case nil:
		return &Search{Join: And}, nil
	case *Search:
		return v, nil
	default:
		return &Search{Join: And, Operands: []Operand{v}}, nil
	}
}

// clause tracks where toPostfix is inside a comparison.
type clause int

const (
	atOperand    clause = iota // before a name or '('
	afterName                  // expecting a comparator
	afterCompare               // expecting a value
	afterValue                 // expecting a join or ')'
)

// toPostfix reorders tokens with the shunting-yard algorithm. Comparison
// tokens pass through in order; joins are emitted after their operands.
// Parentheses are accepted only around whole comparisons or searches.
func toPostfix(tokens []Token) ([]Token, error) {
	postfix := make([]Token, 0, len(tokens))
	var operators []Token // top at the end
	state := atOperand
	var prev Token

	for _, tok := range tokens {
		switch state {
		case afterName:
			if tok.Kind != KindComparator {
				return nil, syntaxErr("expected comparator after '%s' at %d:%d", prev.Literal, tok.Line, tok.Col)
			}
			postfix = append(postfix, tok)
			state = afterCompare

		case afterCompare:
			if tok.Kind != KindString && tok.Kind != KindNumber {
				return nil, syntaxErr("expected value after '%s' at %d:%d", prev.Literal, tok.Line, tok.Col)
			}
			postfix = append(postfix, tok)
			state = afterValue

		case atOperand:
			switch {
			case tok.IsOpenParen():
				operators = append(operators, tok)
			case tok.IsCloseParen():
				return nil, syntaxErr("unexpected ')' at %d:%d", tok.Line, tok.Col)
			case tok.Kind == KindJoinType:
				return nil, syntaxErr("unexpected join operator %q at %d:%d", tok.Literal, tok.Line, tok.Col)
			case tok.Kind == KindComparator:
				return nil, syntaxErr("expected name before '%s' at %d:%d", tok.Literal, tok.Line, tok.Col)
			case tok.Kind == KindName:
				postfix = append(postfix, tok)
				state = afterName
			default:
				return nil, syntaxErr("unexpected %q at %d:%d, expected a name", tok.Literal, tok.Line, tok.Col)
			}

		case afterValue:
			switch {
			case tok.IsOpenParen():
				return nil, syntaxErr("expected join operator before '(' at %d:%d", tok.Line, tok.Col)
			case tok.IsCloseParen():
				closed := false
				for len(operators) > 0 {
					top := operators[len(operators)-1]
					operators = operators[:len(operators)-1]
					if top.IsOpenParen() {
						closed = true
						break
					}
					postfix = append(postfix, top)
				}
				if !closed {
					return nil, syntaxErr("')' at %d:%d has no matching '('", tok.Line, tok.Col)
				}
			case tok.Kind == KindJoinType:
				for len(operators) > 0 {
					top := operators[len(operators)-1]
					// Parenthesized groups bind tighter than anything outside.
					if top.IsOpenParen() || top.Join < tok.Join {
						break
					}
					operators = operators[:len(operators)-1]
					postfix = append(postfix, top)
				}
				operators = append(operators, tok)
				state = atOperand
			default:
				return nil, syntaxErr("unexpected %q at %d:%d, expected a join operator", tok.Literal, tok.Line, tok.Col)
			}
		}
		prev = tok
	}

	switch state {
	case afterName, afterCompare:
		return nil, syntaxErr("unexpected end of filter after '%s' at %d:%d", prev.Literal, prev.Line, prev.Col)
	case atOperand:
		if len(tokens) > 0 {
			return nil, syntaxErr("filter ends with %q at %d:%d", prev.Literal, prev.Line, prev.Col)
		}
	}

	for len(operators) > 0 {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if top.IsOpenParen() {
			return nil, syntaxErr("unclosed '(' at %d:%d", top.Line, top.Col)
		}
		postfix = append(postfix, top)
	}
	return postfix, nil
}

// builder consumes postfix tokens from the end.
type builder struct {
	tokens []Token
}

func (b *builder) pop() (Token, bool) {
	if len(b.tokens) == 0 {
		return Token{}, false
	}
	tok := b.tokens[len(b.tokens)-1]
	b.tokens = b.tokens[:len(b.tokens)-1]
	return tok, true
}

func (b *builder) build() (Operand, error) {
	tok, ok := b.pop()
	if !ok {
		return nil, nil
	}

	switch tok.Kind {
	case KindJoinType:
		right, err := b.build()
		if err != nil {
			return nil, err
		}
		left, err := b.build()
		if err != nil {
			return nil, err
		}
		if left == nil || right == nil {
			return nil, syntaxErr("join operator %q at %d:%d is missing an operand", tok.Literal, tok.Line, tok.Col)
		}
		search := &Search{Join: tok.Join}
		merge(search, left)
		merge(search, right)
		return search, nil

	case KindString, KindNumber:
		return b.comparison(tok)

	default:
		return nil, syntaxErr("unexpected %q at %d:%d", tok.Literal, tok.Line, tok.Col)
	}
}

// comparison assembles name, comparator, and value, given the value token.
func (b *builder) comparison(valueTok Token) (Operand, error) {
	value := Value{Kind: ValueString, Text: valueTok.Literal}
	if valueTok.Kind == KindNumber {
		v, err := numberValue(valueTok.Literal)
		if err != nil {
			return nil, syntaxErr("invalid number %q at %d:%d", valueTok.Literal, valueTok.Line, valueTok.Col)
		}
		value = v
	}

	cmp, ok := b.pop()
	if !ok || cmp.Kind != KindComparator {
		return nil, syntaxErr("expected comparator before %s at %d:%d", value, valueTok.Line, valueTok.Col)
	}
	name, ok := b.pop()
	if !ok || name.Kind != KindName {
		return nil, syntaxErr("expected name before %q at %d:%d", cmp.Literal, cmp.Line, cmp.Col)
	}

	return &Comparison{Name: name.Literal, Comparator: cmp.Comparator, Value: value}, nil
}

// merge appends op to search, flattening same-join subsearches.
func merge(search *Search, op Operand) {
	if sub, ok := op.(*Search); ok && sub.Join == search.Join {
		search.Operands = append(search.Operands, sub.Operands...)
		return
	}
	search.Operands = append(search.Operands, op)
}
