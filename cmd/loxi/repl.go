package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/interp"
	"github.com/cbowman/loxi/internal/pipeline"
	"github.com/cbowman/loxi/internal/resolver"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the read-eval-print loop",
	Long: `Read a line, run it through the full pipeline and print its result.

A bare expression (no trailing ';', no 'print') echoes its value. An error
on one line is reported to stderr and does not terminate the session;
top-level variable and function declarations persist across lines.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	// Depths accumulate across lines: functions declared on an earlier line
	// keep the resolutions of their bodies when called from a later one.
	depths := resolver.Depths{}
	interpreter := interp.New(depths)
	if traceExec {
		interpreter.SetTracer(stmtTracer{})
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(os.Stdout, "> ")
			continue
		}

		source := line
		trimmed := strings.TrimRight(source, " \t")
		bareExpr := !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "}")
		if bareExpr {
			source += ";"
		}

		compiled := pipeline.Compile(source, pipeline.Options{})
		if len(compiled.Errors) > 0 {
			for _, d := range compiled.Errors {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			fmt.Fprint(os.Stdout, "> ")
			continue
		}

		for expr, depth := range compiled.Depths {
			depths[expr] = depth
		}
		interpreter.SetDepths(depths)

		if bareExpr && len(compiled.Program.Statements) == 1 {
			if exprStmt, ok := compiled.Program.Statements[0].(*ast.ExpressionStmt); ok {
				v, err := interpreter.Evaluate(exprStmt.Expression)
				if err != nil {
					fmt.Fprintln(os.Stderr, err.Error())
					fmt.Fprint(os.Stdout, "> ")
					continue
				}
				fmt.Fprintln(os.Stdout, v.String())
				fmt.Fprint(os.Stdout, "> ")
				continue
			}
		}

		if err := interpreter.Interpret(compiled.Program); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		fmt.Fprint(os.Stdout, "> ")
	}
	fmt.Fprintln(os.Stdout)
	return scanner.Err()
}
