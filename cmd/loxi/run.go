package main

import (
	"fmt"
	"os"

	"github.com/cbowman/loxi/internal/astdump"
	"github.com/cbowman/loxi/internal/config"
	"github.com/cbowman/loxi/internal/interp"
	"github.com/cbowman/loxi/internal/pipeline"
	"github.com/cbowman/loxi/internal/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	dumpAST    string
	traceExec  bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or expression",
	Long: `Execute a program from a file or inline expression.

Examples:
  # Run a script file
  loxi run script.lox

  # Evaluate an inline expression
  loxi run -e "print 1 + 2;"

  # Dump the parsed AST
  loxi run --dump-ast script.lox
  loxi run --dump-ast=json script.lox

  # Trace statement execution
  loxi run --trace script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringVar(&dumpAST, "dump-ast", "", `dump the parsed AST instead of running it ("plain" or "json")`)
	runCmd.Flags().Lookup("dump-ast").NoOptDefVal = "plain"
	runCmd.Flags().BoolVar(&traceExec, "trace", false, "trace statement execution to stderr")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to .loxirc.yaml (default: ./.loxirc.yaml or $HOME/.loxirc.yaml)")
}

// stmtTracer implements interp.Tracer by printing each statement's
// position to stderr before it executes.
type stmtTracer struct{}

func (stmtTracer) TraceStmt(pos token.Position) {
	fmt.Fprintf(os.Stderr, "trace: line %d\n", pos.Line)
}

func runScript(_ *cobra.Command, args []string) error {
	var source string

	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(65)
	}

	compiled := pipeline.Compile(source, pipeline.Options{MaxArgs: cfg.MaxArgs})
	if len(compiled.Errors) > 0 {
		for _, d := range compiled.Errors {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		os.Exit(65)
	}

	dump := dumpAST
	if dump == "" && cfg.DumpAST {
		dump = "plain"
	}
	if dump != "" {
		if dump == "json" {
			out, err := astdump.JSON(compiled.Program)
			if err != nil {
				return fmt.Errorf("dumping ast as json: %w", err)
			}
			fmt.Println(out)
		} else {
			for _, stmt := range compiled.Program.Statements {
				fmt.Println(stmt.String())
			}
		}
		return nil
	}

	interpreter := interp.New(compiled.Depths)
	if traceExec || cfg.Trace {
		interpreter.SetTracer(stmtTracer{})
	}

	if err := interpreter.Interpret(compiled.Program); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(70)
	}

	return nil
}
