// Package pipeline wires the scan, parse and resolve stages together the
// way the CLI and REPL both need them; evaluation is left to the caller.
package pipeline

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/lexer"
	"github.com/cbowman/loxi/internal/parser"
	"github.com/cbowman/loxi/internal/resolver"
)

// Options configures the parse stage; all other stages have no
// configurable behaviour.
type Options struct {
	MaxArgs int // 0 means use the parser's built-in default (255)
}

// Compiled is the result of scanning, parsing and resolving a program,
// ready to hand to an Interpreter. A non-empty Errors means the program
// must not be executed.
type Compiled struct {
	Program *ast.Program
	Depths  resolver.Depths
	Errors  []*errs.Diagnostic
}

// Compile runs scan → parse → resolve over source. Scanner and parser
// errors are collected (both stages continue after an error to surface as
// many problems as possible); if any occurred, resolution is skipped
// entirely and Compiled.Errors is returned non-empty. Resolver errors
// abort resolution at the first one encountered.
func Compile(source string, opts Options) *Compiled {
	l := lexer.New(source)
	tokens, scanErrs := l.ScanTokens()

	var diags []*errs.Diagnostic
	for _, e := range scanErrs {
		diags = append(diags, errs.New(errs.CategoryScanner, "", e.Pos, e.Message))
	}

	p := parser.New(tokens)
	if opts.MaxArgs > 0 {
		p = p.WithMaxArgs(opts.MaxArgs)
	}
	program, parseErrs := p.Parse()
	diags = append(diags, parseErrs...)

	if len(diags) > 0 {
		return &Compiled{Program: program, Errors: diags}
	}

	r := resolver.New()
	depths, resolveErrs := r.Resolve(program)
	if len(resolveErrs) > 0 {
		return &Compiled{Program: program, Errors: resolveErrs}
	}

	return &Compiled{Program: program, Depths: depths}
}
