// Command lang runs Lang programs: as a script file, or interactively as a
// REPL when invoked with no arguments.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lkk7/lang/internal/ast"
	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/interp"
	"github.com/lkk7/lang/internal/parser"
	"github.com/lkk7/lang/internal/resolver"
	"github.com/lkk7/lang/internal/scanner"
)

// exitError carries a process exit code through cobra's plain error return,
// so main can exit with the right status (64 usage, 65 static error, 70
// runtime error) instead of cobra's default of 1.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang [script]",
		Short: "Run a Lang script, or start an interactive REPL",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				fmt.Fprintln(os.Stdout, "Usage: lang [script]")
				return &exitError{code: 64}
			}
			return nil
		},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color := isatty.IsTerminal(os.Stderr.Fd())
			if _, ok := os.LookupEnv("LANG_NO_COLOR"); ok {
				color = false
			}
			if len(args) == 1 {
				source, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				return runFile(source, os.Stdout, os.Stderr, color)
			}
			runPrompt(os.Stdin, os.Stdout, os.Stderr, color)
			return nil
		},
	}
	cmd.SetUsageTemplate("Usage: lang [script]\n")
	return cmd
}

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(64)
}

// runFile runs one complete program unit and maps its outcome to the
// exit-code contract: nil on success, *exitError(65) on a static error,
// *exitError(70) on a runtime error.
func runFile(source []byte, stdout, stderr io.Writer, color bool) error {
	reporter := diag.New(stderr)
	reporter.Color = color

	stmts, ok := compile(source, reporter)
	if !ok {
		return &exitError{code: 65}
	}

	locals := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError {
		return &exitError{code: 65}
	}

	it := interp.New(reporter, stdout)
	it.SetLocals(locals)
	it.Interpret(stmts)
	if reporter.HadRuntimeError {
		return &exitError{code: 70}
	}
	return nil
}

// compile scans and parses source, returning ok=false if a static error was
// reported. The parser always runs, even after a lexical error, so a unit
// with both a scan error and a parse error surfaces both in one pass.
func compile(source []byte, reporter *diag.Reporter) ([]ast.Stmt, bool) {
	toks := scanner.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	return stmts, !reporter.HadError
}

// runPrompt implements the REPL: one Interpreter and one Resolver live for
// the whole session, so globals, function/class definitions, and resolved
// scope distances all persist across lines, while each line's HadError is
// reset independently. A line ending in a trailing space continues
// accumulating source instead of compiling it, which lets a REPL user
// paste a multi-line block by ending every non-final line with a space.
func runPrompt(stdin io.Reader, stdout, stderr io.Writer, color bool) {
	reporter := diag.New(stderr)
	reporter.Color = color

	it := interp.New(reporter, stdout)
	res := resolver.New(reporter)

	scan := bufio.NewScanner(stdin)
	var code strings.Builder

	for scan.Scan() {
		line := scan.Text()
		code.WriteString(line)
		code.WriteByte('\n')

		if strings.HasSuffix(line, " ") {
			continue
		}

		reporter.Reset()
		source := code.String()
		code.Reset()

		stmts, ok := compile([]byte(source), reporter)
		if !ok {
			continue
		}

		locals := res.Resolve(stmts)
		if reporter.HadError {
			continue
		}

		it.SetLocals(locals)
		it.Interpret(stmts)
	}
}
