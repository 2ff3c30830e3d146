// Command loxi is a tree-walking interpreter for a small,
// dynamically-typed, class-based scripting language.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
