// Package grammar holds a standalone transcription of the language's
// syntax into Go's x/exp/ebnf dialect, verified by TestEBNF. It is not
// imported by the parser; the parser is hand-written recursive descent,
// and this file exists to keep that hand-written grammar honest against a
// machine-checkable spec.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
