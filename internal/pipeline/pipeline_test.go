package pipeline

import "testing"

func TestCompileSuccessYieldsNoErrors(t *testing.T) {
	c := Compile(`print 1 + 2;`, Options{})
	if len(c.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", c.Errors)
	}
	if len(c.Program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(c.Program.Statements))
	}
}

func TestCompileScannerErrorSkipsResolution(t *testing.T) {
	c := Compile(`var x = "unterminated;`, Options{})
	if len(c.Errors) == 0 {
		t.Fatal("expected scan errors")
	}
	if c.Depths != nil {
		t.Errorf("Depths = %v, want nil when compilation fails", c.Depths)
	}
}

func TestCompileParserErrorSkipsResolution(t *testing.T) {
	c := Compile(`var;`, Options{})
	if len(c.Errors) == 0 {
		t.Fatal("expected parse errors")
	}
	if c.Depths != nil {
		t.Errorf("Depths = %v, want nil when compilation fails", c.Depths)
	}
}

func TestCompileResolverErrorReported(t *testing.T) {
	c := Compile(`{ var a = a; }`, Options{})
	if len(c.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(c.Errors), c.Errors)
	}
}

func TestCompileMaxArgsOptionAppliesToParser(t *testing.T) {
	src := "fun f(a, b, c) {}"
	c := Compile(src, Options{MaxArgs: 2})
	if len(c.Errors) == 0 {
		t.Fatal("expected a MaxArgNumber error with MaxArgs=2 and 3 parameters")
	}
}
