package interp

import (
	"github.com/lkk7/lang/internal/diag"
	"github.com/lkk7/lang/internal/token"
)

// Class is a runtime class object. Calling it constructs an Instance and,
// if the class or any ancestor defines `init`, runs it.
type Class struct {
	Name       string
	superclass *Class
	methods    map[string]*Function
}

// NewClass returns a class named name inheriting from superclass (nil for
// no superclass) with the given method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, superclass: superclass, methods: methods}
}

// FindMethod looks up name on the class itself, then walks the superclass
// chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(it *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a class pointer plus its own field set.
// Fields take priority over methods of the same name when read.
type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(c *Class) *Instance {
	return &Instance{class: c, fields: make(map[string]any)}
}

func (i *Instance) Get(name token.Token) (any, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, diag.NewRuntimeError(name, "Undefined property "+name.Lexeme)
}

func (i *Instance) Set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}
