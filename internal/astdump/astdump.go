// Package astdump renders a parsed Program as JSON for `loxi run
// --dump-ast=json`, built incrementally with sjson rather than hand-built
// with encoding/json so the AST node structs (shared with the resolver
// and interpreter) never need to carry JSON struct tags.
package astdump

import (
	"fmt"

	"github.com/cbowman/loxi/internal/ast"
	"github.com/tidwall/sjson"
)

// JSON renders prog's top-level statements as a JSON document of the
// shape `{"body":[{"index":0,"kind":"...","line":N,"text":"..."}, ...]}`.
func JSON(prog *ast.Program) (string, error) {
	doc := "{}"
	var err error
	for idx, stmt := range prog.Statements {
		doc, err = setStmt(doc, idx, stmt)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setStmt(doc string, idx int, stmt ast.Stmt) (string, error) {
	prefix := fmt.Sprintf("body.%d", idx)

	doc, err := sjson.Set(doc, prefix+".index", idx)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, prefix+".kind", kindOf(stmt))
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, prefix+".line", stmt.Pos().Line)
	if err != nil {
		return "", err
	}
	return sjson.Set(doc, prefix+".text", stmt.String())
}

func kindOf(stmt ast.Stmt) string {
	switch stmt.(type) {
	case *ast.ExpressionStmt:
		return "Expression"
	case *ast.PrintStmt:
		return "Print"
	case *ast.VarStmt:
		return "Var"
	case *ast.BlockStmt:
		return "Block"
	case *ast.IfStmt:
		return "If"
	case *ast.WhileStmt:
		return "While"
	case *ast.FunctionStmt:
		return "Function"
	case *ast.ReturnStmt:
		return "Return"
	case *ast.ClassStmt:
		return "Class"
	default:
		return "Unknown"
	}
}
