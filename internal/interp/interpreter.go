// Package interp tree-walks a resolved program, evaluating expressions and
// executing statements against a chain of Environments.
package interp

import (
	"fmt"
	"io"

	"github.com/lkk7/lang/internal/ast"
	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/resolver"
	"github.com/lkk7/lang/internal/token"
)

// returnSignal unwinds the Go call stack back to the Function.Call frame
// that should catch it, carrying the returned value. It implements error
// only so it can travel through the same execute/eval return channels as
// real runtime errors; Function.Call is the only place that type-asserts
// for it.
type returnSignal struct {
	value any
}

func (r *returnSignal) Error() string { return "return" }

// Interpreter evaluates a resolved program. One Interpreter can run
// multiple program units in sequence (each call to Interpret), which is
// what the REPL driver relies on to keep global state alive across lines.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Locals
	reporter    *diag.Reporter
	stdout      io.Writer
}

// New returns an Interpreter that prints to stdout and reports runtime
// errors through reporter. The global scope is seeded with the native
// builtins (currently just clock).
func New(reporter *diag.Reporter, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", newClock())
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      resolver.Locals{},
		reporter:    reporter,
		stdout:      stdout,
	}
}

// SetLocals merges in the scope-distance table the resolver computed for
// the statements about to be interpreted. It merges rather than replaces:
// a caller may resolve each unit with a fresh Resolver, but the
// Interpreter's locals table lives for the whole process, since a closure
// built in an earlier unit can be called from a later one and still needs
// its distances resolved.
func (it *Interpreter) SetLocals(locals resolver.Locals) {
	for expr, distance := range locals {
		it.locals[expr] = distance
	}
}

// Interpret executes stmts in order. A runtime error aborts the remaining
// statements in this call and is reported through the Interpreter's
// Reporter; the Interpreter itself remains usable for the next call (the
// REPL driver relies on this to keep accepting input after a runtime
// error).
func (it *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if err := it.execute(stmt); err != nil {
			if rte, ok := err.(*diag.RuntimeError); ok {
				it.reporter.RuntimeError(rte)
			}
			return
		}
	}
}

func (it *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := it.eval(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := it.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout, Stringify(v))
		return nil

	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			v, err := it.eval(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		it.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return it.executeBlock(s.Stmts, NewEnvironment(it.environment))

	case *ast.IfStmt:
		cond, err := it.eval(s.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return it.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return it.execute(s.ElseBranch)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(s.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := it.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := NewFunction(s, it.environment, false)
		it.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			v, err := it.eval(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.ClassStmt:
		return it.executeClass(s)
	}
	return nil
}

func (it *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		sup, err := it.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sup.(*Class)
		if !ok {
			return diag.NewRuntimeError(s.Superclass.Name, "Superclass must be a class")
		}
		superclass = sc
	}

	it.environment.Define(s.Name.Lexeme, nil)

	methodEnv := it.environment
	if superclass != nil {
		methodEnv = NewEnvironment(it.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return it.environment.Assign(s.Name, class)
}

// executeBlock runs stmts against env, restoring the previous environment
// before returning (including on error, so a thrown runtime error or
// returnSignal doesn't leave the Interpreter pointed at a scope that's
// about to go out of scope itself).
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := it.environment
	it.environment = env
	defer func() { it.environment = previous }()

	for _, stmt := range stmts {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) eval(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return it.eval(e.Inner)

	case *ast.Unary:
		return it.evalUnary(e)

	case *ast.Binary:
		return it.evalBinary(e)

	case *ast.Logical:
		return it.evalLogical(e)

	case *ast.Ternary:
		cond, err := it.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return it.eval(e.Then)
		}
		return it.eval(e.Else)

	case *ast.Variable:
		return it.lookupVariable(e.Name, e)

	case *ast.Assign:
		return it.evalAssign(e)

	case *ast.Call:
		return it.evalCall(e)

	case *ast.Get:
		return it.evalGet(e)

	case *ast.Set:
		return it.evalSet(e)

	case *ast.This:
		return it.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return it.evalSuper(e)
	}
	return nil, nil
}

func (it *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := it.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case token.Minus:
		n, err := checkNumberOperand(e.Op, right)
		if err != nil {
			return nil, err
		}
		return -n, nil
	case token.Bang:
		return !IsTruthy(right), nil
	}
	return nil, nil
}

func (it *Interpreter) evalLogical(e *ast.Logical) (any, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == token.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else if !IsTruthy(left) {
		return left, nil
	}
	return it.eval(e.Right)
}

func (it *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Minus:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Slash:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		// Floating-point division: a zero divisor produces ±Inf or NaN
		// through ordinary IEEE 754 semantics, not a runtime error.
		return l / r, nil
	case token.Star:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Plus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, diag.NewRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	case token.Greater:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.BangEqual:
		return !IsEqual(left, right), nil
	case token.EqualEqual:
		return IsEqual(left, right), nil
	}
	return nil, nil
}

func (it *Interpreter) evalAssign(e *ast.Assign) (any, error) {
	value, err := it.eval(e.Value)
	if err != nil {
		return nil, err
	}
	if dist, ok := it.locals[e]; ok {
		it.environment.AssignAt(dist, e.Name, value)
	} else if err := it.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (it *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := it.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, diag.NewRuntimeError(e.Paren, "Non-callable called")
	}

	if len(args) != callable.Arity() {
		return nil, diag.NewRuntimeError(e.Paren,
			fmt.Sprintf("Expected %d arguments but got %d", callable.Arity(), len(args)))
	}

	return callable.Call(it, args)
}

func (it *Interpreter) evalGet(e *ast.Get) (any, error) {
	obj, err := it.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, diag.NewRuntimeError(e.Name, "Only instances have properties")
	}
	return inst.Get(e.Name)
}

func (it *Interpreter) evalSet(e *ast.Set) (any, error) {
	obj, err := it.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, diag.NewRuntimeError(e.Name, "Only instances have fields")
	}
	value, err := it.eval(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, value)
	return value, nil
}

func (it *Interpreter) evalSuper(e *ast.Super) (any, error) {
	dist := it.locals[e]
	superclass := it.environment.GetAt(dist, "super").(*Class)
	instance := it.environment.GetAt(dist-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, diag.NewRuntimeError(e.Method, "Undefined property "+e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (it *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (any, error) {
	if dist, ok := it.locals[expr]; ok {
		return it.environment.GetAt(dist, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

func checkNumberOperand(op token.Token, v any) (float64, error) {
	if n, ok := v.(float64); ok {
		return n, nil
	}
	return 0, diag.NewRuntimeError(op, "Operand must be a number")
}

func checkNumberOperands(op token.Token, a, b any) (float64, float64, error) {
	l, lok := a.(float64)
	r, rok := b.(float64)
	if !lok || !rok {
		return 0, 0, diag.NewRuntimeError(op, "Operands must be numbers")
	}
	return l, r, nil
}
