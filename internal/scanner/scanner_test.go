package scanner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/scanner"
	"github.com/lkk7/lang/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := diag.New(&buf)
	toks := scanner.New([]byte(src), reporter).ScanTokens()
	return toks, reporter
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScanSingleAndTwoCharTokens(t *testing.T) {
	toks, reporter := scan(t, "(){},.-+;*:?! != = == < <= > >= /")
	require.False(t, reporter.HadError)
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Colon, token.Question, token.Bang, token.BangEqual,
		token.Equal, token.EqualEqual, token.Less, token.LessEqual,
		token.Greater, token.GreaterEqual, token.Slash, token.EOF,
	}, types(toks))
}

func TestScanAlwaysTerminatesWithEOF(t *testing.T) {
	toks, _ := scan(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Type)
}

func TestLineCommentsConsumedToNewline(t *testing.T) {
	toks, reporter := scan(t, "1 // comment\n2")
	require.False(t, reporter.HadError)
	require.Len(t, toks, 3)
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, 2, toks[1].Line)
}

func TestBlockCommentsCountLinesAndDoNotNest(t *testing.T) {
	toks, reporter := scan(t, "1 /* a\n/* b\nc */ 2")
	require.False(t, reporter.HadError)
	require.Len(t, toks, 3)
	assert.Equal(t, 3, toks[1].Line)
}

func TestUnterminatedBlockCommentIsLexicalError(t *testing.T) {
	_, reporter := scan(t, "/* never closes")
	assert.True(t, reporter.HadError)
}

func TestStringLiteral(t *testing.T) {
	toks, reporter := scan(t, `"hello world"`)
	require.False(t, reporter.HadError)
	require.Len(t, toks, 2)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestMultilineString(t *testing.T) {
	toks, reporter := scan(t, "\"a\nb\"")
	require.False(t, reporter.HadError)
	assert.Equal(t, "a\nb", toks[0].Literal)
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, reporter := scan(t, `"never closes`)
	assert.True(t, reporter.HadError)
}

func TestNumberLiteral(t *testing.T) {
	toks, _ := scan(t, "123 45.67")
	require.Len(t, toks, 3)
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, 45.67, toks[1].Literal)
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks, _ := scan(t, "foo and bar")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Identifier, toks[0].Type)
	assert.Equal(t, token.And, toks[1].Type)
	assert.Equal(t, token.Identifier, toks[2].Type)
}

func TestUnexpectedCharacterReportsAndContinues(t *testing.T) {
	toks, reporter := scan(t, "1 @ 2")
	assert.True(t, reporter.HadError)
	require.Len(t, toks, 3) // the '@' itself produces no token
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, 2.0, toks[1].Literal)
}
