package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	Kind    Kind
	Start   int
	End     int
	Literal string
}

func spans(tokens []Token) []span {
	out := make([]span, len(tokens))
	for i, t := range tokens {
		out[i] = span{Kind: t.Kind, Start: t.Start, End: t.End, Literal: t.Literal}
	}
	return out
}

func TestLex_SingleTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected span
	}{
		{"equal", "=", span{KindComparator, 0, 1, "="}},
		{"not equal", "!=", span{KindComparator, 0, 2, "!="}},
		{"less than", "<", span{KindComparator, 0, 1, "<"}},
		{"less than or equal", "<=", span{KindComparator, 0, 2, "<="}},
		{"greater than", ">", span{KindComparator, 0, 1, ">"}},
		{"greater than or equal", ">=", span{KindComparator, 0, 2, ">="}},
		{"and", "&", span{KindJoinType, 0, 1, "&"}},
		{"or", "|", span{KindJoinType, 0, 1, "|"}},
		{"xor", "^", span{KindJoinType, 0, 1, "^"}},
		{"name", "test", span{KindName, 0, 4, "test"}},
		{"name with digits", "test_2", span{KindName, 0, 6, "test_2"}},
		{"string", `"test"`, span{KindString, 0, 6, "test"}},
		{"empty string", `""`, span{KindString, 0, 2, ""}},
		{"integer", "42", span{KindNumber, 0, 2, "42"}},
		{"negative decimal", "-3.25", span{KindNumber, 0, 5, "-3.25"}},
		{"open paren", "(", span{KindParen, 0, 1, "("}},
		{"close paren", ")", span{KindParen, 0, 1, ")"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Lex(tt.input)
			require.Empty(t, res.Diagnostics)
			require.Equal(t, []span{tt.expected}, spans(res.Tokens))
		})
	}
}

func TestLex_Comparators(t *testing.T) {
	res := Lex("a = 1 b != 1 c < 1 d > 1 e <= 1 f >= 1")
	require.Empty(t, res.Diagnostics)

	var got []Comparator
	for _, tok := range res.Tokens {
		if tok.Kind == KindComparator {
			got = append(got, tok.Comparator)
		}
	}
	assert.Equal(t, []Comparator{Equal, NotEqual, LessThan, GreaterThan, LessThanOrEqual, GreaterThanOrEqual}, got)
}

func TestLex_JoinTypes(t *testing.T) {
	res := Lex("| & ^")
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, Or, res.Tokens[0].Join)
	assert.Equal(t, And, res.Tokens[1].Join)
	assert.Equal(t, Xor, res.Tokens[2].Join)
}

func TestLex_Comparison(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []span
	}{
		{
			name:  "with spaces",
			input: `test = "test"`,
			expected: []span{
				{KindName, 0, 4, "test"},
				{KindComparator, 5, 6, "="},
				{KindString, 7, 13, "test"},
			},
		},
		{
			name:  "without spaces",
			input: `test="test"`,
			expected: []span{
				{KindName, 0, 4, "test"},
				{KindComparator, 4, 5, "="},
				{KindString, 5, 11, "test"},
			},
		},
		{
			name:  "number without spaces",
			input: "a>1",
			expected: []span{
				{KindName, 0, 1, "a"},
				{KindComparator, 1, 2, ">"},
				{KindNumber, 2, 3, "1"},
			},
		},
		{
			name:  "joined comparisons",
			input: `test = "test" | test_2  !="test_2"`,
			expected: []span{
				{KindName, 0, 4, "test"},
				{KindComparator, 5, 6, "="},
				{KindString, 7, 13, "test"},
				{KindJoinType, 14, 15, "|"},
				{KindName, 16, 22, "test_2"},
				{KindComparator, 24, 26, "!="},
				{KindString, 26, 34, "test_2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Lex(tt.input)
			require.Empty(t, res.Diagnostics)
			require.Equal(t, tt.expected, spans(res.Tokens))
		})
	}
}

func TestLex_TracksLinesAndColumns(t *testing.T) {
	res := Lex("test = \"test\"\n| test_2  !=\"test_2\"")
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Tokens, 7)

	join := res.Tokens[3]
	assert.Equal(t, 1, join.Col)
	assert.Equal(t, 2, join.Line)

	name := res.Tokens[4]
	assert.Equal(t, 2, name.Line)
	assert.Equal(t, 3, name.Col)
}

func TestLex_StringSpansNewline(t *testing.T) {
	res := Lex("a = \"x\ny\"")
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, "x\ny", res.Tokens[2].Literal)
}

func TestLex_UnexpectedCharacter(t *testing.T) {
	res := Lex(`test @ "test"`)

	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "unexpected character '@' at 1:6")
	require.Equal(t, []span{
		{KindName, 0, 4, "test"},
		{KindError, 5, 6, "@"},
		{KindString, 7, 13, "test"},
	}, spans(res.Tokens))
}

func TestLex_IncompleteNotEqual(t *testing.T) {
	res := Lex(`test ! "test"`)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "expected '=' after '!'")
	assert.Equal(t, KindError, res.Tokens[1].Kind)

	res = Lex("test !")
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "unexpected end")
}

func TestLex_UnterminatedString(t *testing.T) {
	res := Lex(`a = "open`)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "unterminated string starting at 1:5")

	last := res.Tokens[len(res.Tokens)-1]
	assert.Equal(t, KindError, last.Kind)
	assert.Equal(t, 4, last.Start)
	assert.Equal(t, 9, last.End)
}

func TestLex_MultibyteErrorCoversWholeRune(t *testing.T) {
	input := "a = é"
	res := Lex(input)
	require.Len(t, res.Tokens, 3)

	errTok := res.Tokens[2]
	assert.Equal(t, KindError, errTok.Kind)
	assert.Equal(t, "é", input[errTok.Start:errTok.End])
}

func TestLex_Empty(t *testing.T) {
	res := Lex("")
	assert.Empty(t, res.Tokens)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.HasErrors())

	res = Lex("   \n\t ")
	assert.Empty(t, res.Tokens)
}

func TestLex_TokensAreSortedAndDisjoint(t *testing.T) {
	inputs := []string{
		`a = "x" & (b >= 2 | c != "y") ^ d < -1.5`,
		`@@ "unterminated`,
		`!!==<<>>`,
		"name\n=\n\"multi\nline\"",
	}
	for _, input := range inputs {
		res := Lex(input)
		prevEnd := 0
		for i, tok := range res.Tokens {
			require.GreaterOrEqual(t, tok.Start, prevEnd, "token %d of %q overlaps", i, input)
			require.LessOrEqual(t, tok.End, len(input))
			require.Less(t, tok.Start, tok.End, "token %d of %q is empty", i, input)
			prevEnd = tok.End
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "NAME", KindName.String())
	assert.Equal(t, "ERROR", KindError.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}
