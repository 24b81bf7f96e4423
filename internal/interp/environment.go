package interp

import (
	"github.com/dolthub/swiss"

	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/token"
)

// Environment is one lexical scope's variable bindings, chained to its
// enclosing scope. Lookups and assignments normally walk this chain by
// name (Get/Assign, used for globals), but once a binding's scope distance
// has been precomputed by the resolver, GetAt/AssignAt jump straight to the
// right Environment instead of searching.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, any]
}

// NewEnvironment returns a scope nested inside enclosing, or a top-level
// scope when enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: swiss.NewMap[string, any](8)}
}

// Define binds name in this scope, shadowing any binding of the same name
// in an enclosing scope. Re-declaring an existing binding in the same
// scope is allowed, matching spec.md's global/REPL redeclaration rule.
func (e *Environment) Define(name string, value any) {
	e.values.Put(name, value)
}

// Get looks up name by walking the enclosing chain. Used only for globals;
// resolved local references use GetAt instead.
func (e *Environment) Get(name token.Token) (any, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, diag.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'")
}

// Assign rebinds an existing name, walking the enclosing chain. It is an
// error to assign to a name that was never declared.
func (e *Environment) Assign(name token.Token, value any) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return diag.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'")
}

// GetAt reads name from the scope exactly distance hops up the enclosing
// chain, as precomputed by the resolver.
func (e *Environment) GetAt(distance int, name string) any {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt rebinds name in the scope exactly distance hops up the chain.
func (e *Environment) AssignAt(distance int, name token.Token, value any) {
	e.ancestor(distance).values.Put(name.Lexeme, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
