package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "negated prefixed term",
			input: "oak -@create",
			expected: []Token{
				{Type: TokenWord, Literal: "oak", Pos: 1},
				{Type: TokenMinus, Literal: "-", Pos: 5},
				{Type: TokenPrefix, Literal: "@", Pos: 6},
				{Type: TokenWord, Literal: "create", Pos: 7},
				{Type: TokenEOF, Literal: "", Pos: 13},
			},
		},
		{
			name:  "quoted string and pipe",
			input: `"oak pl" | a-b`,
			expected: []Token{
				{Type: TokenString, Literal: "oak pl", Pos: 1},
				{Type: TokenPipe, Literal: "|", Pos: 10},
				{Type: TokenWord, Literal: "a-b", Pos: 12},
				{Type: TokenEOF, Literal: "", Pos: 15},
			},
		},
		{
			name:  "lone dash is a word",
			input: "- x",
			expected: []Token{
				{Type: TokenWord, Literal: "-", Pos: 1},
				{Type: TokenWord, Literal: "x", Pos: 3},
				{Type: TokenEOF, Literal: "", Pos: 4},
			},
		},
		{
			name:  "prefix char inside a word",
			input: "a@b",
			expected: []Token{
				{Type: TokenWord, Literal: "a@b", Pos: 1},
				{Type: TokenEOF, Literal: "", Pos: 4},
			},
		},
		{
			name:  "unterminated string",
			input: `"iron`,
			expected: []Token{
				{Type: TokenString, Literal: "iron", Pos: 1},
				{Type: TokenEOF, Literal: "", Pos: 6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, want := range tt.expected {
				got := l.NextToken()
				assert.Equal(t, want, got, "token %d", i)
			}
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "|", TokenPipe.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}
