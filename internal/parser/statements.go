package parser

import (
	"fmt"

	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/token"
)

// declaration → classDecl | funDecl | varDecl | statement
//
// On a parser error at this level, synchronize() discards tokens until the
// next statement boundary or declaration keyword so parsing can continue
// and report further errors; the caller discards this statement either way
// since the program will not be executed once any parser error occurred.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl → "class" IDENT ( "<" IDENT )? "{" function* "}"
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expected class name")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENT, "expected superclass name")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "expected '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		m := p.function("method")
		if fn, ok := m.(*ast.FunctionStmt); ok {
			methods = append(methods, fn)
		}
	}
	p.consume(token.RIGHT_BRACE, "expected '}' after class body")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function → IDENT "(" params? ")" block
func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.IDENT, "expected "+kind+" name")
	p.consume(token.LEFT_PAREN, "expected '(' after "+kind+" name")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= p.maxArgs {
				p.errorAt(p.peek(), errs.CodeMaxArgNumber, fmt.Sprintf("can't have more than %d parameters", p.maxArgs))
			} else {
				params = append(params, p.consume(token.IDENT, "expected parameter name"))
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after parameters")
	p.consume(token.LEFT_BRACE, "expected '{' before "+kind+" body")
	body := p.block()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// varDecl → "var" IDENT ( "=" expression )? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expected variable name")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: init}
}

// statement → exprStmt | forStmt | ifStmt | printStmt
//           | returnStmt | whileStmt | block
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		left := p.previous()
		return &ast.BlockStmt{LeftBrace: left, Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// block → "{" declaration* "}"  (opening brace already consumed)
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "expected '}' after block")
	return stmts
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after if condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: cond, Then: then, Else: els}
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after while condition")
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Condition: cond, Body: body}
}

// forStmt → "for" "(" ( varDecl | exprStmt | ";" )
//                     expression? ";"
//                     expression? ")" statement
//
// Desugared at parse time into Block{ init?, While(cond ?? true, Block{ body, incr? }) }.
// No for-node exists in the AST.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after loop condition")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after for clauses")

	body := p.statement()

	loopBody := []ast.Stmt{body}
	if increment != nil {
		loopBody = append(loopBody, &ast.ExpressionStmt{Expression: increment})
	}
	if condition == nil {
		condition = &ast.Literal{Token: keyword, Value: true}
	}
	loop := &ast.WhileStmt{Keyword: keyword, Condition: condition,
		Body: &ast.BlockStmt{LeftBrace: keyword, Statements: loopBody}}

	var outer []ast.Stmt
	if initializer != nil {
		outer = append(outer, initializer)
	}
	outer = append(outer, loop)
	return &ast.BlockStmt{LeftBrace: keyword, Statements: outer}
}

// printStmt → "print" expression ";"
func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after value")
	return &ast.PrintStmt{Keyword: keyword, Expression: value}
}

// returnStmt → "return" expression? ";"
func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// exprStmt → expression ";"
func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExpressionStmt{Expression: expr}
}
