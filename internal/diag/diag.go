// Package diag centralizes the interpreter's diagnostic reporting: the
// scanner, parser and resolver all report static problems through one
// Reporter instead of halting the pipeline themselves, and the interpreter
// reports the single runtime error that can occur per program unit. The
// driver (cmd/lang) decides what to do with HadError/HadRuntimeError once a
// stage finishes.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lkk7/lang/internal/token"
)

// Reporter collects static and runtime diagnostics for one program unit (a
// whole file, or one accumulated REPL entry) and writes them to Stderr.
type Reporter struct {
	Stderr io.Writer

	HadError        bool
	HadRuntimeError bool

	// Color, when true, wraps static-error lines in red and runtime-error
	// lines in yellow. Disabled by default so library callers (and tests)
	// get plain text; cmd/lang turns it on for an interactive terminal.
	Color bool
}

// New returns a Reporter writing to w with coloring disabled.
func New(w io.Writer) *Reporter {
	return &Reporter{Stderr: w}
}

// Reset clears the accumulated error flags, e.g. between REPL units.
func (r *Reporter) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
}

// Error reports a lexical error tied only to a source line (the scanner has
// no token yet to anchor the error to).
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAt reports a parse or resolution error anchored to a specific token.
func (r *Reporter) ErrorAt(tok token.Token, message string) {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at EOF"
	}
	r.report(tok.Line, where, message)
}

func (r *Reporter) report(line int, where, message string) {
	text := fmt.Sprintf("[line %d] Error (%s): %s", line, where, message)
	if r.Color {
		text = color.RedString(text)
	}
	fmt.Fprintln(r.Stderr, text)
	r.HadError = true
}

// RuntimeError is the error a failed runtime operation carries: a message
// plus the token whose line should be reported.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError anchored to tok.
func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// RuntimeError reports a runtime error in the "<msg>\n[line N]" shape spec.md
// §6 requires, and sets HadRuntimeError so the driver can exit(70).
func (r *Reporter) RuntimeError(err *RuntimeError) {
	text := fmt.Sprintf("%s\n[line %d]", err.Message, err.Token.Line)
	if r.Color {
		text = color.YellowString(text)
	}
	fmt.Fprintln(r.Stderr, text)
	r.HadRuntimeError = true
}
