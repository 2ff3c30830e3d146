package interp

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", NumberValue(1))
	v, ok := env.Get("x")
	if !ok || v != NumberValue(1) {
		t.Fatalf("Get(x) = %v, %v, want 1, true", v, ok)
	}
}

func TestEnvironmentGetFallsThroughToEnclosing(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NumberValue(1))
	inner := NewEnclosedEnvironment(outer)

	v, ok := inner.Get("x")
	if !ok || v != NumberValue(1) {
		t.Fatalf("Get(x) = %v, %v, want 1, true", v, ok)
	}
}

func TestEnvironmentDefineShadowsEnclosing(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NumberValue(1))
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", NumberValue(2))

	innerV, _ := inner.Get("x")
	outerV, _ := outer.Get("x")
	if innerV != NumberValue(2) || outerV != NumberValue(1) {
		t.Fatalf("inner=%v outer=%v, want 2 and 1", innerV, outerV)
	}
}

func TestEnvironmentAssignWritesNearestExistingBinding(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NumberValue(1))
	inner := NewEnclosedEnvironment(outer)

	if !inner.Assign("x", NumberValue(9)) {
		t.Fatal("Assign(x) = false, want true")
	}
	v, _ := outer.Get("x")
	if v != NumberValue(9) {
		t.Fatalf("outer x = %v, want 9", v)
	}
}

func TestEnvironmentAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment()
	if env.Assign("missing", NumberValue(1)) {
		t.Fatal("Assign(missing) = true, want false")
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment()
	block := NewEnclosedEnvironment(global)
	fn := NewEnclosedEnvironment(block)
	fn.Define("x", NumberValue(1))
	block.Define("x", NumberValue(2))
	global.Define("x", NumberValue(3))

	if v := fn.GetAt(0, "x"); v != NumberValue(1) {
		t.Errorf("GetAt(0) = %v, want 1", v)
	}
	if v := fn.GetAt(1, "x"); v != NumberValue(2) {
		t.Errorf("GetAt(1) = %v, want 2", v)
	}
	if v := fn.GetAt(2, "x"); v != NumberValue(3) {
		t.Errorf("GetAt(2) = %v, want 3", v)
	}

	fn.AssignAt(1, "x", NumberValue(20))
	if v, _ := block.Get("x"); v != NumberValue(20) {
		t.Errorf("block x after AssignAt(1) = %v, want 20", v)
	}
}

func TestEnvironmentAncestorPanicsWhenChainExhausted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when distance exceeds the chain depth")
		}
	}()
	NewEnvironment().Ancestor(1)
}
