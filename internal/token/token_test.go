package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lkk7/lang/internal/token"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "PLUS", token.Plus.String())
	assert.Equal(t, "EOF", token.EOF.String())
}

func TestKeywordsTable(t *testing.T) {
	for _, word := range []string{"and", "class", "else", "false", "for", "fun",
		"if", "nil", "or", "print", "return", "super", "this", "true", "var", "while"} {
		_, ok := token.Keywords[word]
		assert.Truef(t, ok, "expected %q to be a reserved word", word)
	}
	_, ok := token.Keywords["notakeyword"]
	assert.False(t, ok)
}

func TestTokenStringShowsNullWhenLiteralAbsent(t *testing.T) {
	tok := token.Token{Type: token.Identifier, Lexeme: "x", Line: 1}
	assert.Equal(t, "IDENTIFIER x null", tok.String())
}

func TestTokenStringIncludesLiteral(t *testing.T) {
	tok := token.Token{Type: token.Number, Lexeme: "1.5", Literal: 1.5, Line: 3}
	assert.Equal(t, "NUMBER 1.5 1.5", tok.String())
}
