package resolver

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
)

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)

	case *ast.ReturnStmt:
		if r.currentFunction == funcNone {
			r.errorAt(s.Keyword.Pos, errs.CodeTopLevelReturn, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == funcInitializer {
				r.errorAt(s.Keyword.Pos, errs.CodeReturnFromInit, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.ClassStmt:
		r.resolveClass(s)

	default:
		panic("resolver: unreachable statement kind")
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Name.Pos, errs.CodeClassInheritItself, "a class can't inherit from itself")
		} else {
			r.resolveExpr(s.Superclass)
		}
		r.currentClass = classSubclass
		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range s.Methods {
		ft := funcMethod
		if method.Name.Lexeme == "init" {
			ft = funcInitializer
		}
		r.resolveFunction(method, ft)
	}

	r.endScope() // "this" scope

	if s.Superclass != nil {
		r.endScope() // "super" scope
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.peekScope()[e.Name.Lexeme]; declared && !defined {
				r.errorAt(e.Name.Pos, errs.CodeVariableNotInitialized,
					"can't read local variable '"+e.Name.Lexeme+"' in its own initializer")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword.Pos, errs.CodeThisOutsideClass, "can't use 'this' outside of a class")
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Keyword.Pos, errs.CodeSuperOutsideClass, "can't use 'super' outside of a class")
		case classClass:
			r.errorAt(e.Keyword.Pos, errs.CodeSuperOutsideClass, "can't use 'super' in a class with no superclass")
		default:
			r.resolveLocal(e, "super")
		}

	default:
		panic("resolver: unreachable expression kind")
	}
}
