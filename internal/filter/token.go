// Package filter implements the searchable ingredient list: an incremental
// token index over every known ingredient, a small query language and
// visibility rules for hidden ingredients.
package filter

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota

	TokenWord   // unquoted term
	TokenString // "quoted term"

	TokenPipe   // |
	TokenMinus  // - at the start of a term
	TokenPrefix // @ # $ % & at the start of a term
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenWord:
		return "WORD"
	case TokenString:
		return "STRING"
	case TokenPipe:
		return "|"
	case TokenMinus:
		return "-"
	case TokenPrefix:
		return "PREFIX"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // Position in input for error reporting
}

// isPrefix reports whether c selects a search field.
func isPrefix(c byte) bool {
	_, ok := prefixKinds[c]
	return ok
}
