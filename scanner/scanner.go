// Package scanner converts Lox-family source text into a token stream.
//
// It is a direct hand-written character scanner, not a generated DFA:
// the token set is small and fixed, so there is no grammar-compiler
// component for it to exercise.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/josharian/intern"
	"github.com/sirupsen/logrus"

	"github.com/fjc-oai/tiny-interpreter/token"
)

// ScanError is a fatal lexical error: an unterminated string or an
// unrecognized character.
type ScanError struct {
	Line    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Scanner holds the state needed to tokenize one source string.
type Scanner struct {
	source string
	start  int
	cur    int
	line   int
	tokens []token.Token
}

// New creates a Scanner over source.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Scan tokenizes the whole source, returning a slice terminated by a
// single EOF token. DISCARD tokens (whitespace, comments) are filtered
// out before being returned.
func Scan(source string) ([]token.Token, error) {
	s := New(source)
	return s.Scan()
}

func (s *Scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.cur
		tok, err := s.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.DISCARD {
			s.tokens = append(s.tokens, tok)
		}
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: s.line})
	logrus.Debugf("scanner: produced %d tokens", len(s.tokens))
	for i, tok := range s.tokens {
		logrus.Tracef("scanner: token %d: %s", i, tok)
	}
	return s.tokens, nil
}

func (s *Scanner) isAtEnd() bool {
	return s.cur >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.cur]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.cur] != expected {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) makeToken(kind token.Kind, literal any) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.cur],
		Literal: literal,
		Line:    s.line,
	}
}

func (s *Scanner) scanToken() (token.Token, error) {
	c := s.advance()
	switch c {
	case '(':
		return s.makeToken(token.LEFT_PAREN, nil), nil
	case ')':
		return s.makeToken(token.RIGHT_PAREN, nil), nil
	case '{':
		return s.makeToken(token.LEFT_BRACE, nil), nil
	case '}':
		return s.makeToken(token.RIGHT_BRACE, nil), nil
	case ',':
		return s.makeToken(token.COMMA, nil), nil
	case '.':
		return s.makeToken(token.DOT, nil), nil
	case '-':
		return s.makeToken(token.MINUS, nil), nil
	case '+':
		return s.makeToken(token.PLUS, nil), nil
	case ';':
		return s.makeToken(token.SEMICOLON, nil), nil
	case '*':
		return s.makeToken(token.STAR, nil), nil
	case '!':
		if s.match('=') {
			return s.makeToken(token.BANG_EQUAL, nil), nil
		}
		return s.makeToken(token.BANG, nil), nil
	case '=':
		if s.match('=') {
			return s.makeToken(token.EQUAL_EQUAL, nil), nil
		}
		return s.makeToken(token.EQUAL, nil), nil
	case '<':
		if s.match('=') {
			return s.makeToken(token.LESS_EQUAL, nil), nil
		}
		return s.makeToken(token.LESS, nil), nil
	case '>':
		if s.match('=') {
			return s.makeToken(token.GREATER_EQUAL, nil), nil
		}
		return s.makeToken(token.GREATER, nil), nil
	case '/':
		if s.match('/') {
			for !s.isAtEnd() && s.peek() != '\n' {
				s.advance()
			}
			return s.makeToken(token.DISCARD, nil), nil
		}
		return s.makeToken(token.SLASH, nil), nil
	case ' ', '\r', '\t':
		return s.makeToken(token.DISCARD, nil), nil
	case '\n':
		s.line++
		return s.makeToken(token.DISCARD, nil), nil
	case '"':
		return s.scanString()
	default:
		if isDigit(c) {
			return s.scanNumber(), nil
		}
		if isAlpha(c) {
			return s.scanIdentifier(), nil
		}
		return token.Token{}, &ScanError{Line: s.line, Message: fmt.Sprintf("unexpected character %q", c)}
	}
}

func (s *Scanner) scanString() (token.Token, error) {
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		return token.Token{}, &ScanError{Line: s.line, Message: "unterminated string"}
	}
	s.advance() // closing quote
	value := s.source[s.start+1 : s.cur-1]
	return s.makeToken(token.STRING, value), nil
}

func (s *Scanner) scanNumber() token.Token {
	for !s.isAtEnd() && isDigit(s.peek()) {
		s.advance()
	}
	if !s.isAtEnd() && s.peek() == '.' {
		s.advance()
		for !s.isAtEnd() && isDigit(s.peek()) {
			s.advance()
		}
	}
	value, _ := strconv.ParseFloat(s.source[s.start:s.cur], 64)
	return s.makeToken(token.NUMBER, value)
}

func (s *Scanner) scanIdentifier() token.Token {
	for !s.isAtEnd() && isAlphaNumeric(s.peek()) {
		s.advance()
	}
	name := intern.String(s.source[s.start:s.cur])
	if kind, ok := token.Keywords[name]; ok {
		tok := s.makeToken(kind, nil)
		tok.Lexeme = name
		return tok
	}
	tok := s.makeToken(token.IDENTIFIER, nil)
	tok.Lexeme = name
	return tok
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isDigit(c) || isAlpha(c)
}
