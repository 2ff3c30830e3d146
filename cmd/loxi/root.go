package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "loxi",
	Short: "loxi interpreter",
	Long: `loxi is a tree-walking interpreter for a small, dynamically-typed,
class-based scripting language.

It runs a script file or an inline expression, or drops into a REPL when
invoked with no arguments.`,
	Version: Version,
	RunE:    runRepl,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
