package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/resolver"
	"github.com/cbowman/loxi/internal/token"
)

// Tracer receives a callback before every statement is executed, when
// non-nil. Production runs leave it nil and pay no cost.
type Tracer interface {
	TraceStmt(pos token.Position)
}

// Interpreter walks a resolved AST, evaluating statements and
// expressions against the current environment chain.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	depths      resolver.Depths
	stdout      io.Writer
	tracer      Tracer
}

// New creates an Interpreter with the global environment seeded with the
// native builtins.
func New(depths resolver.Depths) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{globals: globals, environment: globals, depths: depths, stdout: os.Stdout}
	registerBuiltins(globals)
	return i
}

// SetOutput redirects `print` output (tests and the REPL use this).
func (i *Interpreter) SetOutput(w io.Writer) { i.stdout = w }

// SetTracer installs a Tracer, or clears it if nil.
func (i *Interpreter) SetTracer(t Tracer) { i.tracer = t }

// SetDepths swaps in a freshly resolved depth map. The REPL resolves each
// line independently (so each line gets its own ast.Expr pointer keys) but
// keeps a single Interpreter alive across lines so globals persist.
func (i *Interpreter) SetDepths(depths resolver.Depths) { i.depths = depths }

// Globals exposes the global environment, e.g. so the REPL can persist
// top-level bindings across lines.
func (i *Interpreter) Globals() *Environment { return i.globals }

// Interpret runs every top-level statement in order. A runtime error
// aborts immediately; the `return` control signal must never
// reach this level — if it does, the interpreter has a bug.
func (i *Interpreter) Interpret(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := i.execute(stmt); err != nil {
			if _, ok := asReturnSignal(err); ok {
				panic("interp: return signal escaped to top level")
			}
			return err
		}
	}
	return nil
}

// Evaluate runs a single expression against the current environment,
// without the statement-level plumbing Interpret uses. The REPL uses this
// to echo the value of a bare expression line.
func (i *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return i.evaluate(expr)
}

func (i *Interpreter) runtimeErr(pos token.Position, code errs.Code, msg string) error {
	return errs.New(errs.CategoryRuntime, code, pos, msg)
}

func (i *Interpreter) runtimeErrf(pos token.Position, code errs.Code, format string, args ...any) error {
	return errs.Newf(errs.CategoryRuntime, code, pos, format, args...)
}

// ---- statements ---------------------------------------------------------

func (i *Interpreter) execute(stmt ast.Stmt) error {
	if i.tracer != nil {
		i.tracer.TraceStmt(stmt.Pos())
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var value Value = Nil
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{Declaration: s, Closure: i.environment}
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = Nil
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.ClassStmt:
		return i.executeClass(s)

	default:
		return i.runtimeErr(stmt.Pos(), errs.CodeUnreachableCode, "unreachable statement kind")
	}
}

// executeBlock scopes statement execution to env for its duration,
// restoring the interpreter's previous environment on every exit path:
// normal completion, a runtime error, or a `return` signal.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return i.runtimeErr(s.Superclass.Pos(), errs.CodeInvalidCallObjectType, "superclass must be a class")
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, Nil)

	env := i.environment
	if superclass != nil {
		env = NewEnclosedEnvironment(i.environment)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			Declaration:   m,
			Closure:       env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	i.environment.Assign(s.Name.Lexeme, class)
	return nil
}
