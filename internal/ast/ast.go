// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the resolver and interpreter.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cbowman/loxi/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the lexeme of the token most closely
	// associated with this node, useful for debugging and error
	// messages.
	TokenLiteral() string
	// String renders the node back to a source-like form, for
	// debugging and tests.
	String() string
	// Pos returns the node's source location.
	Pos() token.Position
}

// Expr is any node that produces a value when evaluated.
//
// Variable, Assign, This and Super expressions are the ones the resolver
// annotates with a scope depth; their identity as a map key is simply the
// *pointer* to the concrete struct (Go compares interface values holding
// pointers by pointer equality), so no separate node-id field is needed.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: the sequence of top-level declarations.
type Program struct {
	Statements []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1}
}

// ---- Expressions ----------------------------------------------------

// Literal is a number, string, boolean or nil constant.
type Literal struct {
	Token token.Token
	Value any // nil, float64, string or bool
}

func (e *Literal) exprNode()            {}
func (e *Literal) TokenLiteral() string { return e.Token.Lexeme }
func (e *Literal) Pos() token.Position  { return e.Token.Pos }
func (e *Literal) String() string {
	if e.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", e.Value)
}

// Grouping is a parenthesised expression.
type Grouping struct {
	Paren      token.Token
	Expression Expr
}

func (e *Grouping) exprNode()            {}
func (e *Grouping) TokenLiteral() string { return e.Paren.Lexeme }
func (e *Grouping) Pos() token.Position  { return e.Paren.Pos }
func (e *Grouping) String() string       { return "(" + e.Expression.String() + ")" }

// Unary is a prefix operator applied to a single operand.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (e *Unary) exprNode()            {}
func (e *Unary) TokenLiteral() string { return e.Operator.Lexeme }
func (e *Unary) Pos() token.Position  { return e.Operator.Pos }
func (e *Unary) String() string       { return "(" + e.Operator.Lexeme + e.Right.String() + ")" }

// Binary is an infix arithmetic or comparison operator.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) exprNode()            {}
func (e *Binary) TokenLiteral() string { return e.Operator.Lexeme }
func (e *Binary) Pos() token.Position  { return e.Operator.Pos }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// Logical is `and`/`or`, which short-circuit and return an operand, not a
// coerced boolean.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) exprNode()            {}
func (e *Logical) TokenLiteral() string { return e.Operator.Lexeme }
func (e *Logical) Pos() token.Position  { return e.Operator.Pos }
func (e *Logical) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// Variable reads a named binding.
type Variable struct {
	Name token.Token
}

func (e *Variable) exprNode()            {}
func (e *Variable) TokenLiteral() string { return e.Name.Lexeme }
func (e *Variable) Pos() token.Position  { return e.Name.Pos }
func (e *Variable) String() string       { return e.Name.Lexeme }

// Assign writes a named binding and yields the assigned value.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) exprNode()            {}
func (e *Assign) TokenLiteral() string { return e.Name.Lexeme }
func (e *Assign) Pos() token.Position  { return e.Name.Pos }
func (e *Assign) String() string       { return e.Name.Lexeme + " = " + e.Value.String() }

// Call invokes a callee with a list of evaluated arguments.
type Call struct {
	Callee Expr
	Paren  token.Token // closing ')', used for error locations
	Args   []Expr
}

func (e *Call) exprNode()            {}
func (e *Call) TokenLiteral() string { return e.Paren.Lexeme }
func (e *Call) Pos() token.Position  { return e.Callee.Pos() }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Get reads a property (field or method) off an instance.
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) exprNode()            {}
func (e *Get) TokenLiteral() string { return e.Name.Lexeme }
func (e *Get) Pos() token.Position  { return e.Name.Pos }
func (e *Get) String() string       { return e.Object.String() + "." + e.Name.Lexeme }

// Set writes a property on an instance.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *Set) exprNode()            {}
func (e *Set) TokenLiteral() string { return e.Name.Lexeme }
func (e *Set) Pos() token.Position  { return e.Name.Pos }
func (e *Set) String() string {
	return e.Object.String() + "." + e.Name.Lexeme + " = " + e.Value.String()
}

// This is the receiver reference inside a method body.
type This struct {
	Keyword token.Token
}

func (e *This) exprNode()            {}
func (e *This) TokenLiteral() string { return e.Keyword.Lexeme }
func (e *This) Pos() token.Position  { return e.Keyword.Pos }
func (e *This) String() string       { return "this" }

// Super is a `super.method` reference inside a subclass method body.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) exprNode()            {}
func (e *Super) TokenLiteral() string { return e.Keyword.Lexeme }
func (e *Super) Pos() token.Position  { return e.Keyword.Pos }
func (e *Super) String() string       { return "super." + e.Method.Lexeme }
