package interp_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/interp"
	"github.com/lkk7/lang/internal/parser"
	"github.com/lkk7/lang/internal/resolver"
	"github.com/lkk7/lang/internal/scanner"
)

// fixture is one whole-program scenario fed through lex->parse->resolve->run
// and snapshotted on its captured stdout, the same shape go-dws's
// fixture_test.go drives its .pas corpus through.
type fixture struct {
	name   string
	source string
}

var passFixtures = []fixture{
	{
		name:   "ArithmeticPrecedence",
		source: `print 1 + 2 * 3;`,
	},
	{
		name: "BlockScopeShadowsClosureCapture",
		source: `
			var a = "global";
			{
				fun f() { print a; }
				var a = "local";
				f();
			}
		`,
	},
	{
		name: "ClosureCounterRetainsState",
		source: `
			fun c() {
				var i = 0;
				fun inc() {
					i = i + 1;
					return i;
				}
				return inc;
			}
			var n = c();
			print n();
			print n();
			print n();
		`,
	},
	{
		name: "InstanceFieldReadInMethod",
		source: `
			class Greet {
				hi() { print "hi " + this.name; }
			}
			var g = Greet();
			g.name = "world";
			g.hi();
		`,
	},
	{
		name: "SuperCallsAncestorMethodBeforeOwn",
		source: `
			class A {
				speak() { print "A"; }
			}
			class B < A {
				speak() { super.speak(); print "B"; }
			}
			B().speak();
		`,
	},
	{
		name: "ForLoopDesugarsToWhile",
		source: `for (var i = 0; i < 3; i = i + 1) print i;`,
	},
}

// TestFixturesProducesExpectedOutput runs the literal end-to-end programs
// and snapshots their stdout.
func TestFixturesProducesExpectedOutput(t *testing.T) {
	for _, fx := range passFixtures {
		t.Run(fx.name, func(t *testing.T) {
			out, reporter := run(t, fx.source)
			require.False(t, reporter.HadError)
			require.False(t, reporter.HadRuntimeError)
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestReadingLocalInOwnInitializerIsStaticError(t *testing.T) {
	var errBuf bytes.Buffer
	reporter := diag.New(&errBuf)

	toks := scanner.New([]byte(`{ var x = x; }`), reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError)

	resolver.New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError)
	assert.Contains(t, errBuf.String(), "Can't read local variable in its own initializer.")
}

func TestReturningValueFromInitIsStaticError(t *testing.T) {
	var errBuf bytes.Buffer
	reporter := diag.New(&errBuf)

	toks := scanner.New([]byte(`class C { init() { return 1; } }`), reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError)

	resolver.New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError)
	assert.Contains(t, errBuf.String(), "Can't return a value from an initializer.")
}

func TestMixedOperandTypesRuntimeErrorMessage(t *testing.T) {
	var errBuf, outBuf bytes.Buffer
	reporter := diag.New(&errBuf)

	toks := scanner.New([]byte(`print 1 + "a";`), reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError)

	locals := resolver.New(reporter).Resolve(stmts)
	require.False(t, reporter.HadError)

	it := interp.New(reporter, &outBuf)
	it.SetLocals(locals)
	it.Interpret(stmts)

	assert.Equal(t, "", outBuf.String())
	assert.True(t, reporter.HadRuntimeError)
	assert.Contains(t, errBuf.String(), "Operands must be two numbers or two strings.")
}

func TestCallingNonCallableRuntimeErrorMessage(t *testing.T) {
	var errBuf, outBuf bytes.Buffer
	reporter := diag.New(&errBuf)

	toks := scanner.New([]byte(`(1)();`), reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError)

	locals := resolver.New(reporter).Resolve(stmts)
	require.False(t, reporter.HadError)

	it := interp.New(reporter, &outBuf)
	it.SetLocals(locals)
	it.Interpret(stmts)

	assert.True(t, reporter.HadRuntimeError)
	assert.Contains(t, errBuf.String(), "Non-callable called")
}

// TestInitializerIdempotence verifies that re-invoking an already constructed
// instance's init method re-runs its body, rather than caching the first
// call's effects, and returns `this` every time regardless of init's own
// return statements.
func TestInitializerIdempotence(t *testing.T) {
	out, reporter := run(t, `
		class Counter {
			init() {
				this.n = 0;
			}
			bump() {
				this.n = this.n + 1;
			}
		}
		var c = Counter();
		c.bump();
		c.bump();
		print c.n;
		print c.init() == c;
		print c.n;
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, []string{"2", "true", "0"}, lines(out))
}
