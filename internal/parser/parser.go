// Package parser implements a recursive-descent parser that converts a
// token sequence into the statement and expression AST consumed by the
// resolver and interpreter.
package parser

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/token"
)

// maxArgs caps call arguments and function parameters (spec §4.1). An
// embedder may raise or lower this via internal/config.
const maxArgs = 255

// declarationStarters are the keywords synchronize() treats as the start
// of a new declaration — it advances past the next statement boundary
// without taking any branch-specific action.
var declarationStarters = map[token.Kind]bool{
	token.CLASS:  true,
	token.FUN:    true,
	token.VAR:    true,
	token.FOR:    true,
	token.IF:     true,
	token.WHILE:  true,
	token.PRINT:  true,
	token.RETURN: true,
}

// Parser holds parsing state over a fixed token slice.
type Parser struct {
	tokens  []token.Token
	current int
	maxArgs int
	errors  []*errs.Diagnostic
}

// New creates a Parser over tokens produced by the lexer. EOF must be the
// last token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, maxArgs: maxArgs}
}

// WithMaxArgs overrides the call-argument / parameter-list cap (default
// 255), for embedders configured via .loxirc.yaml.
func (p *Parser) WithMaxArgs(n int) *Parser {
	p.maxArgs = n
	return p
}

// Parse runs the full grammar (`program → declaration* EOF`) and returns
// the resulting Program together with every parse error encountered.
// Errors do not stop parsing: the parser synchronises and continues so it
// can report more than one problem per run.
func (p *Parser) Parse() (*ast.Program, []*errs.Diagnostic) {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		if stmt := p.declaration(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog, p.errors
}

// ---- token cursor -----------------------------------------------------

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(k token.Kind) bool {
	if p.atEnd() {
		return k == token.EOF
	}
	return p.peek().Kind == k
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// parseError unwinds the current declaration back to declaration()'s
// recover, mirroring the source's exception-based "panic mode": once the
// parser hits a token it cannot make sense of, it gives up on the rest of
// that production rather than continuing to consume tokens against a
// grammar position it has already lost track of.
type parseError struct{}

// consume advances past the expected kind or records a structured
// "InvalidConsumeType" error and unwinds to the enclosing declaration.
func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.peek(), errs.CodeInvalidConsumeType, msg)
	panic(parseError{})
}

func (p *Parser) errorAt(tok token.Token, code errs.Code, msg string) {
	p.errors = append(p.errors, errs.New(errs.CategoryParser, code, tok.Pos, msg))
}

// synchronize discards tokens until it reaches a statement boundary (just
// past a ';') or the start of a declaration keyword, then resumes normal
// parsing. The contract is "advance past the next statement boundary";
// which keyword it lands on is not otherwise significant.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		if declarationStarters[p.peek().Kind] {
			return
		}
		p.advance()
	}
}
