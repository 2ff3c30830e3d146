package interp

import "testing"

func TestNativeFunctionCallDelegatesToFn(t *testing.T) {
	fn := &NativeFunction{
		Name:   "double",
		ArityN: 1,
		Fn: func(i *Interpreter, args []Value) (Value, error) {
			return args[0].(NumberValue) * 2, nil
		},
	}
	if fn.Arity() != 1 {
		t.Fatalf("Arity() = %d, want 1", fn.Arity())
	}
	v, err := fn.Call(nil, []Value{NumberValue(21)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != NumberValue(42) {
		t.Errorf("result = %v, want 42", v)
	}
}

func TestClassArityMatchesInit(t *testing.T) {
	noInit := &Class{Name: "A", Methods: map[string]*Function{}}
	if noInit.Arity() != 0 {
		t.Errorf("Arity() with no init = %d, want 0", noInit.Arity())
	}

	withInit := &Class{Name: "B", Methods: map[string]*Function{
		"init": {Declaration: fnDeclWithParams("init", "x", "y")},
	}}
	if withInit.Arity() != 2 {
		t.Errorf("Arity() with init(x, y) = %d, want 2", withInit.Arity())
	}
}

func TestClassFindMethodSearchesSuperclassChain(t *testing.T) {
	base := &Class{Name: "Base", Methods: map[string]*Function{
		"greet": {Declaration: fnDeclWithParams("greet")},
	}}
	derived := &Class{Name: "Derived", Superclass: base, Methods: map[string]*Function{}}

	if derived.FindMethod("greet") == nil {
		t.Error("FindMethod(greet) = nil, want method inherited from superclass")
	}
	if derived.FindMethod("missing") != nil {
		t.Error("FindMethod(missing) should be nil")
	}
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	class := &Class{Name: "A", Methods: map[string]*Function{
		"x": {Declaration: fnDeclWithParams("x")},
	}}
	instance := &Instance{Class: class, Fields: map[string]Value{"x": NumberValue(5)}}

	v, ok := instance.Get("x")
	if !ok {
		t.Fatal("Get(x) = false, want true")
	}
	if v != NumberValue(5) {
		t.Errorf("Get(x) = %v, want the field value 5, not the method", v)
	}
}

func TestInstanceGetBindsMethods(t *testing.T) {
	class := &Class{Name: "A", Methods: map[string]*Function{
		"greet": {Declaration: fnDeclWithParams("greet")},
	}}
	instance := &Instance{Class: class, Fields: map[string]Value{}}

	v, ok := instance.Get("greet")
	if !ok {
		t.Fatal("Get(greet) = false, want true")
	}
	bound, ok := v.(*Function)
	if !ok {
		t.Fatalf("Get(greet) = %T, want *Function", v)
	}
	this, ok := bound.Closure.Get("this")
	if !ok || this != Value(instance) {
		t.Errorf("bound method's closure 'this' = %v, want the receiver instance", this)
	}
}

func TestBindPreservesIsInitializer(t *testing.T) {
	f := &Function{Declaration: fnDeclWithParams("init"), Closure: NewEnvironment(), IsInitializer: true}
	instance := &Instance{Class: &Class{Name: "A"}, Fields: map[string]Value{}}
	bound := f.Bind(instance)
	if !bound.IsInitializer {
		t.Error("Bind() lost IsInitializer")
	}
}
