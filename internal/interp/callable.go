package interp

import (
	"github.com/cbowman/loxi/internal/ast"
)

// Callable is the single open capability in the value model: native
// builtins, user-defined functions and classes (used as constructors)
// all implement it.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, args []Value) (Value, error)
}

// NativeFunction wraps a Go function as a fixed-arity builtin with no
// environment of its own.
type NativeFunction struct {
	Name   string
	ArityN int
	Fn     func(i *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string   { return "NATIVE_FUNCTION" }
func (n *NativeFunction) String() string { return "<native fn " + n.Name + ">" }
func (n *NativeFunction) Arity() int     { return n.ArityN }
func (n *NativeFunction) Call(i *Interpreter, args []Value) (Value, error) {
	return n.Fn(i, args)
}

// Function is a user-defined function or method: a parameter list, a
// body and the closure environment captured at its definition site — not
// the caller's environment.
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() string   { return "FUNCTION" }
func (f *Function) String() string { return "<fn " + f.Declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int     { return len(f.Declaration.Params) }

// Call pushes a fresh frame enclosed by the function's closure (never
// the caller's environment), binds parameters positionally, executes the
// body, and unwinds a `return` signal into the call's result. An `init`
// method always yields the bound instance regardless of what its body
// returns.
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(f.Declaration.Body, env)
	if ret, ok := asReturnSignal(err); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// Bind returns a fresh Function whose closure has an extra enclosing
// frame defining `this` as instance, with IsInitializer preserved. Two
// bindings of the same method on the same instance behave identically on
// the same arguments.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a constructor: arity is the arity of its `init` method, or 0
// if it has none.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return "<class " + c.Name + ">" }

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up a method by name, first on the class itself then
// recursively on its superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Call allocates a fresh Instance and, if the class declares `init`,
// binds and invokes it with the call arguments before returning the
// instance.
func (c *Class) Call(i *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an object: a reference to its class and its own field
// values. Fields are distinct from methods and shadow them on read.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (o *Instance) Type() string   { return "INSTANCE" }
func (o *Instance) String() string { return "<" + o.Class.Name + " instance>" }

// Get reads a field or a bound method. It does not itself know the
// requesting token's position; the caller reports UndefinedProperty.
func (o *Instance) Get(name string) (Value, bool) {
	if v, ok := o.Fields[name]; ok {
		return v, true
	}
	if m := o.Class.FindMethod(name); m != nil {
		return m.Bind(o), true
	}
	return nil, false
}

// Set assigns a field, creating it if absent.
func (o *Instance) Set(name string, value Value) {
	o.Fields[name] = value
}
