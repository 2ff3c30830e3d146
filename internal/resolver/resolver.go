// Package resolver performs a single pre-execution walk over the AST that
// computes the variable depth map and enforces the language's static
// scope rules. It never evaluates anything.
package resolver

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/token"
)

// Depths maps a Variable/Assign/This/Super expression to the number of
// enclosing environment frames to traverse to find its binding. An
// expression absent from the map is resolved at runtime against the
// global frame.
type Depths map[ast.Expr]int

// functionType tracks what kind of function body is currently being
// resolved, so `return` and `this` can be validated.
type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classType tracks whether `this`/`super` are legal in the current
// context.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished being
// defined (initialiser evaluated) as opposed to merely declared.
type scope map[string]bool

// Resolver walks a parsed Program once, building a Depths table and
// collecting any static errors.
type Resolver struct {
	scopes          []scope
	depths          Depths
	currentFunction functionType
	currentClass    classType
	errors          []*errs.Diagnostic
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{depths: make(Depths)}
}

// resolveError unwinds the walk back to Resolve's recover once the first
// static error is found: a resolver error aborts resolution immediately
// rather than collecting further problems.
type resolveError struct{}

// Resolve walks prog and returns the depth map together with any static
// errors. The first error aborts the walk; callers must treat
// any non-empty error slice as "do not execute this program".
func (r *Resolver) Resolve(prog *ast.Program) (depths Depths, errors []*errs.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(resolveError); !ok {
				panic(rec)
			}
		}
		depths, errors = r.depths, r.errors
	}()
	r.resolveStmts(prog.Statements)
	return
}

func (r *Resolver) errorAt(pos token.Position, code errs.Code, msg string) {
	r.errors = append(r.errors, errs.New(errs.CategoryResolver, code, pos, msg))
	panic(resolveError{})
}

// ---- scope stack -------------------------------------------------------

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peekScope() scope { return r.scopes[len(r.scopes)-1] }

// declare registers name as present-but-not-yet-defined in the innermost
// scope. Declaring the same name twice in one non-global scope is a
// static error; the global scope (no scopes on the stack) is exempt, so
// the REPL can shadow an earlier top-level `var`.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.peekScope()
	if _, exists := s[name.Lexeme]; exists {
		r.errorAt(name.Pos, errs.CodeVariableAlreadyExists,
			"variable '"+name.Lexeme+"' already declared in this scope")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

// resolveLocal searches the scope stack from innermost to outermost; on
// the first match it records the hop count in the depth map. No match
// means the reference is global and is left out of the map entirely.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
