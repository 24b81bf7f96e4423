package resolver_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkk7/lang/internal/ast"
	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/parser"
	"github.com/lkk7/lang/internal/resolver"
	"github.com/lkk7/lang/internal/scanner"
)

func resolve(t *testing.T, src string) ([]ast.Stmt, resolver.Locals, *diag.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := diag.New(&buf)
	toks := scanner.New([]byte(src), reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError)
	locals := resolver.New(reporter).Resolve(stmts)
	return stmts, locals, reporter
}

func TestResolveLocalShadowingDistance(t *testing.T) {
	stmts, locals, reporter := resolve(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
	`)
	require.False(t, reporter.HadError)

	block := stmts[1].(*ast.BlockStmt)
	printStmt := block.Stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.Variable)

	dist, ok := locals[v]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveGlobalHasNoEntry(t *testing.T) {
	stmts, locals, reporter := resolve(t, "var a = 1; print a;")
	require.False(t, reporter.HadError)

	printStmt := stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.Variable)

	_, ok := locals[v]
	assert.False(t, ok)
}

func TestResolveClosureDistanceThroughNestedScopes(t *testing.T) {
	stmts, locals, reporter := resolve(t, `
		fun outer() {
			var x = 1;
			fun inner() {
				print x;
			}
		}
	`)
	require.False(t, reporter.HadError)

	outer := stmts[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	printStmt := inner.Body[0].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.Variable)

	dist, ok := locals[v]
	require.True(t, ok)
	assert.Equal(t, 1, dist)
}

func TestResolveSelfReferenceInInitializerIsError(t *testing.T) {
	_, _, reporter := resolve(t, "var a = 1; { var a = a; }")
	assert.True(t, reporter.HadError)
}

func TestResolveTopLevelReturnIsError(t *testing.T) {
	_, _, reporter := resolve(t, "return 1;")
	assert.True(t, reporter.HadError)
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, _, reporter := resolve(t, `
		class A {
			init() { return 1; }
		}
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, _, reporter := resolve(t, "print this;")
	assert.True(t, reporter.HadError)
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	_, _, reporter := resolve(t, `
		class A { f() { return super.f(); } }
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, _, reporter := resolve(t, "class A < A {}")
	assert.True(t, reporter.HadError)
}

func TestResolveDuplicateLocalDeclarationIsError(t *testing.T) {
	_, _, reporter := resolve(t, "{ var a = 1; var a = 2; }")
	assert.True(t, reporter.HadError)
}

func TestResolveThisInsideMethodBindsToMethodScope(t *testing.T) {
	stmts, locals, reporter := resolve(t, `
		class A {
			f() { print this; }
		}
	`)
	require.False(t, reporter.HadError)

	class := stmts[0].(*ast.ClassStmt)
	method := class.Methods[0]
	printStmt := method.Body[0].(*ast.PrintStmt)
	this := printStmt.Expr.(*ast.This)

	dist, ok := locals[this]
	require.True(t, ok)
	assert.Equal(t, 1, dist)
}
