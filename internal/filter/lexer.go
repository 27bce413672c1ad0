package filter

// Lexer tokenizes search queries.
type Lexer struct {
	input     string
	pos       int  // current position in input
	ch        byte // current character under examination
	termStart bool // ch begins a new term
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, termStart: true}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	if l.skipWhitespace() {
		l.termStart = true
	}

	tok := Token{Pos: l.pos}

	switch {
	case l.ch == 0:
		tok.Type = TokenEOF
		return tok
	case l.ch == '|':
		tok.Type = TokenPipe
		tok.Literal = "|"
		l.termStart = true
	case l.ch == '"':
		tok.Type = TokenString
		tok.Literal = l.readString()
		l.termStart = false
		return tok
	case l.ch == '-' && l.termStart && startsTerm(l.peekChar()):
		tok.Type = TokenMinus
		tok.Literal = "-"
	case isPrefix(l.ch) && l.termStart && startsTerm(l.peekChar()):
		tok.Type = TokenPrefix
		tok.Literal = string(l.ch)
		l.termStart = false
	default:
		tok.Type = TokenWord
		tok.Literal = l.readWord()
		l.termStart = false
		return tok
	}

	l.readChar()
	return tok
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipWhitespace advances past whitespace and reports whether it skipped any.
func (l *Lexer) skipWhitespace() bool {
	skipped := false
	for isSpace(l.ch) {
		l.readChar()
		skipped = true
	}
	return skipped
}

// readWord reads until whitespace, a pipe or a quote.
func (l *Lexer) readWord() string {
	start := l.pos - 1
	for l.ch != 0 && !isSpace(l.ch) && l.ch != '|' && l.ch != '"' {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

// readString reads a double-quoted string. A missing closing quote ends the
// string at the end of input.
func (l *Lexer) readString() string {
	l.readChar() // skip opening quote
	start := l.pos - 1
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	str := l.input[start : l.pos-1]
	if l.ch == '"' {
		l.readChar() // skip closing quote
	}
	return str
}

func startsTerm(c byte) bool {
	return c != 0 && !isSpace(c) && c != '|'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
