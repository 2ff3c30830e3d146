package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/lexer"
	"github.com/cbowman/loxi/internal/parser"
	"github.com/cbowman/loxi/internal/resolver"
)

// run compiles and executes src, returning captured stdout. It fails the
// test on any scan/parse/resolve error.
func run(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	tokens, lexErrs := l.ScanTokens()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", lexErrs)
	}
	prog, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	depths, resolveErrs := resolver.New().Resolve(prog)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolver errors: %v", resolveErrs)
	}

	var out bytes.Buffer
	i := New(depths)
	i.SetOutput(&out)
	if err := i.Interpret(prog); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String()
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestClosuresCaptureLexicalScope(t *testing.T) {
	out := run(t, `
		var a = "global";
		{ fun showA(){ print a; } showA(); var a = "block"; showA(); }
	`)
	got := lines(out)
	want := []string{"global", "global"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestArithmeticAndStringConcat(t *testing.T) {
	out := run(t, `print 1 + 2; print "foo" + "bar"; print 3 * 4 - 5;`)
	got := lines(out)
	want := []string{"3", "foobar", "7"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, got, want)
		}
	}
}

func TestFibonacciViaRecursion(t *testing.T) {
	out := run(t, `fun fib(n){ if (n < 2) return n; return fib(n-1)+fib(n-2); } print fib(10);`)
	got := strings.TrimSpace(out)
	if got != "55" {
		t.Errorf("output = %q, want %q", got, "55")
	}
}

func TestClassWithInitAndMethod(t *testing.T) {
	out := run(t, `
		class Greeter{ init(n){ this.name = n; } hello(){ print "hi " + this.name; } }
		Greeter("world").hello();
	`)
	got := strings.TrimSpace(out)
	if got != "hi world" {
		t.Errorf("output = %q, want %q", got, "hi world")
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out := run(t, `
		class A{ speak(){ print "A"; } } class B < A{ speak(){ super.speak(); print "B"; } } B().speak();
	`)
	got := lines(out)
	want := []string{"A", "B"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestShortCircuitReturnsOperandNotBoolean(t *testing.T) {
	out := run(t, `print nil or "x"; print 1 and 2;`)
	got := lines(out)
	want := []string{"x", "2"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestReturnUnwindsOutOfWhileLoop(t *testing.T) {
	out := run(t, `
		fun f() {
			var i = 0;
			while (true) {
				if (i == 3) return i;
				i = i + 1;
			}
		}
		print f();
	`)
	got := strings.TrimSpace(out)
	if got != "3" {
		t.Errorf("output = %q, want %q", got, "3")
	}
}

func runExpectRuntimeError(t *testing.T, src string) error {
	t.Helper()
	l := lexer.New(src)
	tokens, lexErrs := l.ScanTokens()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", lexErrs)
	}
	prog, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	depths, resolveErrs := resolver.New().Resolve(prog)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolver errors: %v", resolveErrs)
	}
	i := New(depths)
	i.SetOutput(&bytes.Buffer{})
	return i.Interpret(prog)
}

func TestRuntimeErrorAddingStringAndNumber(t *testing.T) {
	err := runExpectRuntimeError(t, `print "a" + 1;`)
	assertDiagnosticCode(t, err, errs.CodeExpectedAddableOperands)
}

func TestRuntimeErrorUndefinedCallee(t *testing.T) {
	err := runExpectRuntimeError(t, `foo();`)
	assertDiagnosticCode(t, err, errs.CodeUnknownVariable)
}

func TestRuntimeErrorCallingNonCallable(t *testing.T) {
	err := runExpectRuntimeError(t, `1();`)
	assertDiagnosticCode(t, err, errs.CodeInvalidCallObjectType)
}

func assertDiagnosticCode(t *testing.T, err error, want errs.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want one with code %s", want)
	}
	d, ok := err.(*errs.Diagnostic)
	if !ok {
		t.Fatalf("error is %T, want *errs.Diagnostic", err)
	}
	if d.Code != want {
		t.Fatalf("code = %s, want %s", d.Code, want)
	}
}
