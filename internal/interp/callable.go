package interp

import "github.com/lkk7/lang/internal/ast"

// Callable is anything that can appear as the callee of a Call expression:
// user-defined functions, classes (as constructors), and native functions.
type Callable interface {
	Arity() int
	Call(it *Interpreter, args []any) (any, error)
}

// Function is a user-defined function or method, closing over the
// environment active at its declaration site.
type Function struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction returns a Function closing over closure. isInitializer marks
// a class's `init` method, which always returns `this` regardless of its
// body's return statement.
func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

// Bind returns a copy of f whose closure additionally defines `this` as
// instance, so method bodies can reference the receiver.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.decl, env, f.isInitializer)
}

func (f *Function) Call(it *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := it.executeBlock(f.decl.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.isInitializer {
				return f.closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// NativeFunction wraps a host-provided builtin such as clock.
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []any) any
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(it *Interpreter, args []any) (any, error) {
	return n.fn(args), nil
}
