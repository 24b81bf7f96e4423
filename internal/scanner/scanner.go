// Package scanner turns Lang source text into a token stream.
package scanner

import (
	"strconv"

	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/token"
)

// Scanner is a single-pass, no-backtracking lexer over a byte slice.
type Scanner struct {
	source   []byte
	reporter *diag.Reporter

	start     int
	current   int
	line      int
	tokenLine int // line the token currently being scanned started on
}

// New returns a Scanner over source that reports lexical errors to reporter.
func New(source []byte, reporter *diag.Reporter) *Scanner {
	return &Scanner{source: source, reporter: reporter, line: 1}
}

// ScanTokens scans the whole source and returns the resulting token list,
// always ending in a single EOF token. Errors are reported through the
// Scanner's Reporter and do not stop scanning.
func (s *Scanner) ScanTokens() []token.Token {
	var tokens []token.Token

	for !s.atEnd() {
		s.start = s.current
		if tok, ok := s.scanToken(); ok {
			tokens = append(tokens, tok)
		}
	}

	tokens = append(tokens, token.Token{Type: token.EOF, Line: s.line})
	return tokens
}

func (s *Scanner) scanToken() (token.Token, bool) {
	s.tokenLine = s.line
	c := s.advance()

	switch c {
	case ' ', '\r', '\t':
		return token.Token{}, false
	case '\n':
		s.line++
		return token.Token{}, false

	case '(':
		return s.make(token.LeftParen), true
	case ')':
		return s.make(token.RightParen), true
	case '{':
		return s.make(token.LeftBrace), true
	case '}':
		return s.make(token.RightBrace), true
	case ',':
		return s.make(token.Comma), true
	case '.':
		return s.make(token.Dot), true
	case '-':
		return s.make(token.Minus), true
	case '+':
		return s.make(token.Plus), true
	case ';':
		return s.make(token.Semicolon), true
	case '*':
		return s.make(token.Star), true
	case ':':
		return s.make(token.Colon), true
	case '?':
		return s.make(token.Question), true

	case '!':
		if s.match('=') {
			return s.make(token.BangEqual), true
		}
		return s.make(token.Bang), true
	case '=':
		if s.match('=') {
			return s.make(token.EqualEqual), true
		}
		return s.make(token.Equal), true
	case '<':
		if s.match('=') {
			return s.make(token.LessEqual), true
		}
		return s.make(token.Less), true
	case '>':
		if s.match('=') {
			return s.make(token.GreaterEqual), true
		}
		return s.make(token.Greater), true

	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
			return token.Token{}, false
		case s.match('*'):
			s.blockComment()
			return token.Token{}, false
		default:
			return s.make(token.Slash), true
		}

	case '"':
		return s.string()

	default:
		switch {
		case isDigit(c):
			return s.number(), true
		case isAlpha(c):
			return s.identifier(), true
		default:
			s.reporter.Error(s.line, "Unexpected character.")
			return token.Token{}, false
		}
	}
}

// blockComment consumes a /* ... */ comment. Nesting is not supported: the
// first */ closes the comment regardless of intervening /* sequences. An
// unterminated comment is a lexical error.
func (s *Scanner) blockComment() {
	for {
		if s.atEnd() {
			s.reporter.Error(s.line, "Unterminated block comment.")
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

func (s *Scanner) string() (token.Token, bool) {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.reporter.Error(s.line, "Unterminated string.")
		return token.Token{}, false
	}

	s.advance() // closing quote
	value := string(s.source[s.start+1 : s.current-1])
	return token.Token{Type: token.String, Lexeme: string(s.source[s.start:s.current]), Literal: value, Line: s.tokenLine}, true
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := string(s.source[s.start:s.current])
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Type: token.Number, Lexeme: lexeme, Literal: value, Line: s.tokenLine}
}

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	lexeme := string(s.source[s.start:s.current])
	typ := token.Identifier
	if kw, ok := token.Keywords[lexeme]; ok {
		typ = kw
	}
	return token.Token{Type: typ, Lexeme: lexeme, Line: s.tokenLine}
}

func (s *Scanner) make(typ token.Type) token.Token {
	return token.Token{Type: typ, Lexeme: string(s.source[s.start:s.current]), Line: s.tokenLine}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
