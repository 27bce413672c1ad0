package filter

import (
	"fmt"
	"strings"
)

// Term is a single search term.
type Term struct {
	Kind   Kind
	Text   string
	Negate bool
	// Prefixed is set when the term named its field explicitly.
	Prefixed bool
}

// Query is a parsed search: alternatives separated by | whose terms must all match.
type Query struct {
	Alternatives [][]Term
	Sort         *SortOrder
}

// IsEmpty reports whether the query has no terms.
func (q *Query) IsEmpty() bool {
	return len(q.Alternatives) == 0
}

const sortKeyword = "sort:"

// Parser parses search query tokens.
type Parser struct {
	lexer   *Lexer
	modes   Modes
	current Token
}

// NewParser creates a parser for the input. modes decides how prefixes are read.
func NewParser(input string, modes Modes) *Parser {
	p := &Parser{lexer: NewLexer(input), modes: modes}
	p.nextToken()
	return p
}

// Parse parses a query using the given field modes.
func Parse(input string, modes Modes) (*Query, error) {
	return NewParser(input, modes).Parse()
}

// Parse parses the input and returns the Query.
func (p *Parser) Parse() (*Query, error) {
	query := &Query{}
	var group []Term

	closeGroup := func() {
		if len(group) > 0 {
			query.Alternatives = append(query.Alternatives, group)
		}
		group = nil
	}

	for p.current.Type != TokenEOF {
		if p.current.Type == TokenPipe {
			closeGroup()
			p.nextToken()
			continue
		}

		if p.current.Type == TokenWord && strings.HasPrefix(strings.ToLower(p.current.Literal), sortKeyword) {
			order, err := parseSort(p.current.Literal[len(sortKeyword):])
			if err != nil {
				return nil, fmt.Errorf("%w at position %d", err, p.current.Pos)
			}
			query.Sort = &order
			p.nextToken()
			continue
		}

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if term.Text != "" {
			group = append(group, term)
		}
	}
	closeGroup()

	return query, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.current = p.lexer.NextToken()
}

// parseTerm parses a term.
// term = [ "-" ] [ prefix ] ( word | string )
func (p *Parser) parseTerm() (Term, error) {
	var term Term

	if p.current.Type == TokenMinus {
		term.Negate = true
		p.nextToken()
	}

	var prefix string
	if p.current.Type == TokenPrefix {
		prefix = p.current.Literal
		p.nextToken()
	}

	switch p.current.Type {
	case TokenWord, TokenString:
		term.Text = p.current.Literal
	default:
		return Term{}, fmt.Errorf("expected term, got %s at position %d", p.current.Type, p.current.Pos)
	}
	p.nextToken()

	if prefix != "" {
		kind := prefixKinds[prefix[0]]
		if p.modes.of(kind) == ModeDisabled {
			term.Text = prefix + term.Text
		} else {
			term.Kind = kind
			term.Prefixed = true
		}
	}
	return term, nil
}

// parseSort reads the value of a sort: override, e.g. "name" or "-mod".
func parseSort(value string) (SortOrder, error) {
	var order SortOrder
	if strings.HasPrefix(value, "-") {
		order.Descending = true
		value = value[1:]
	}
	field, err := ParseSortField(value)
	if err != nil {
		return SortOrder{}, err
	}
	if value == "" {
		return SortOrder{}, fmt.Errorf("empty sort field")
	}
	order.Field = field
	return order, nil
}
