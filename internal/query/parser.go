package query

import (
	"fmt"

	"harshagw/textstats/internal/analysis"
)

// Parser parses tokens into a Query AST.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens into a Query AST.
func Parse(tokens []Token) (Query, error) {
	return NewParser(tokens).Parse()
}

// ParseString tokenizes and parses a query string.
func ParseString(input string) (Query, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse parses the tokens into a Query AST. Words are lowercased to match
// the vocabulary; regular expressions are kept as written.
func (p *Parser) Parse() (Query, error) {
	if len(p.tokens) == 0 || (len(p.tokens) == 1 && p.tokens[0].Type == TokenEOF) {
		return &MatchAllQuery{}, nil
	}

	query, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token at position %d: %s", p.pos, p.current())
	}

	return query, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	token := p.current()
	p.pos++
	return token
}

func (p *Parser) parseOrExpr() (Query, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}

	orClauses := []Query{left}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		orClauses = append(orClauses, right)
	}

	if len(orClauses) == 1 {
		return orClauses[0], nil
	}
	return &BoolQuery{Should: orClauses}, nil
}

func (p *Parser) parseAndExpr() (Query, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	andClauses := []Query{left}
	for {
		if p.current().Type == TokenAnd {
			p.advance()
			right, err := p.parseUnaryExpr()
			if err != nil {
				return nil, err
			}
			andClauses = append(andClauses, right)
			continue
		}

		switch p.current().Type {
		case TokenTerm, TokenPrefix, TokenFuzzy, TokenRegex, TokenLParen, TokenNot:
			right, err := p.parseUnaryExpr()
			if err != nil {
				return nil, err
			}
			andClauses = append(andClauses, right)
			continue
		}
		break
	}

	if len(andClauses) == 1 {
		return andClauses[0], nil
	}
	return &BoolQuery{Must: andClauses}, nil
}

func (p *Parser) parseUnaryExpr() (Query, error) {
	if p.current().Type == TokenNot {
		p.advance()
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &BoolQuery{MustNot: []Query{expr}}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Query, error) {
	token := p.current()

	switch token.Type {
	case TokenLParen:
		return p.parseGrouped()
	case TokenTerm:
		p.advance()
		return &TermQuery{Term: analysis.Lower(token.Value)}, nil
	case TokenPrefix:
		p.advance()
		return &PrefixQuery{Prefix: analysis.Lower(token.Value)}, nil
	case TokenFuzzy:
		p.advance()
		return &FuzzyQuery{Term: analysis.Lower(token.Value), Fuzziness: token.Distance}, nil
	case TokenRegex:
		p.advance()
		return &RegexQuery{Pattern: token.Value}, nil
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of query")
	default:
		return nil, fmt.Errorf("unexpected token: %s", token)
	}
}

func (p *Parser) parseGrouped() (Query, error) {
	p.advance()

	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenRParen {
		return nil, fmt.Errorf("expected ')' at position %d, got %s", p.pos, p.current())
	}
	p.advance()

	return expr, nil
}
