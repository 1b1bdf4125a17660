// Package query parses and evaluates queries over a document vocabulary.
//
// Syntax:
//
//	word        exact word
//	wo*         prefix
//	word~2      words within two edits (word~ means one)
//	/w.+d/      regular expression matching the whole word
//	a AND b     both (adjacent clauses are ANDed as well)
//	a OR b      either
//	NOT a, -a   exclusion
//	( ... )     grouping
package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenTerm TokenType = iota
	TokenPrefix
	TokenFuzzy
	TokenRegex
	TokenAnd
	TokenOr
	TokenNot
	TokenLParen
	TokenRParen
	TokenEOF
)

// MaxFuzziness is the largest edit distance a fuzzy clause may request.
const MaxFuzziness = 2

func (t TokenType) String() string {
	switch t {
	case TokenTerm:
		return "TERM"
	case TokenPrefix:
		return "PREFIX"
	case TokenFuzzy:
		return "FUZZY"
	case TokenRegex:
		return "REGEX"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token. Fuzzy tokens carry their edit distance.
type Token struct {
	Type     TokenType
	Value    string
	Distance uint8
}

func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
	return t.Type.String()
}

// Lexer tokenizes a query string.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize tokenizes a query string into tokens ending with TokenEOF.
func Tokenize(query string) ([]Token, error) {
	return NewLexer(query).TokenizeAll()
}

// TokenizeAll returns all tokens from the input.
func (l *Lexer) TokenizeAll() ([]Token, error) {
	var tokens []Token
	for {
		token, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			break
		}
	}
	return tokens, nil
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}, nil
	}

	switch l.input[l.pos] {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "("}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")"}, nil
	case '-':
		if next, _ := l.peekRune(1); next != utf8.RuneError && !unicode.IsSpace(next) {
			l.pos++
			return Token{Type: TokenNot, Value: "-"}, nil
		}
	case '/':
		return l.readRegex()
	}

	return l.readWord()
}

// peekRune decodes the rune offset bytes after the current position.
func (l *Lexer) peekRune(offset int) (rune, int) {
	if l.pos+offset >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos+offset:])
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) readRegex() (Token, error) {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.input) && l.input[l.pos] != '/' {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			b.WriteByte('/')
			l.pos += 2
			continue
		}
		b.WriteByte(l.input[l.pos])
		l.pos++
	}

	if l.pos >= len(l.input) {
		return Token{}, fmt.Errorf("unterminated regex at position %d", start)
	}
	l.pos++

	if b.Len() == 0 {
		return Token{}, fmt.Errorf("empty regex at position %d", start)
	}
	return Token{Type: TokenRegex, Value: b.String()}, nil
}

func (l *Lexer) readWord() (Token, error) {
	start := l.pos

	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			break
		}
		l.pos += size
	}

	word := l.input[start:l.pos]
	if word == "" {
		return Token{}, fmt.Errorf("unexpected character at position %d", l.pos)
	}

	switch word {
	case "AND":
		return Token{Type: TokenAnd, Value: word}, nil
	case "OR":
		return Token{Type: TokenOr, Value: word}, nil
	case "NOT":
		return Token{Type: TokenNot, Value: word}, nil
	}

	if idx := strings.LastIndexByte(word, '~'); idx > 0 {
		distance := uint64(1)
		if digits := word[idx+1:]; digits != "" {
			d, err := strconv.ParseUint(digits, 10, 8)
			if err != nil || d > MaxFuzziness {
				return Token{}, fmt.Errorf("invalid edit distance %q at position %d (0-%d)", digits, start+idx+1, MaxFuzziness)
			}
			distance = d
		}
		return Token{Type: TokenFuzzy, Value: word[:idx], Distance: uint8(distance)}, nil
	}

	if prefix, ok := strings.CutSuffix(word, "*"); ok {
		return Token{Type: TokenPrefix, Value: prefix}, nil
	}

	return Token{Type: TokenTerm, Value: word}, nil
}
