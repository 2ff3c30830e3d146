package interp

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/token"
)

// fnDeclWithParams builds a minimal *ast.FunctionStmt with an empty body,
// named name, taking one parameter per entry in params.
func fnDeclWithParams(name string, params ...string) *ast.FunctionStmt {
	decl := &ast.FunctionStmt{Name: token.Token{Kind: token.IDENT, Lexeme: name}}
	for _, p := range params {
		decl.Params = append(decl.Params, token.Token{Kind: token.IDENT, Lexeme: p})
	}
	return decl
}
