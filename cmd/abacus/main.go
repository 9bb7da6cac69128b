// Command abacus evaluates arithmetic expressions with arbitrary precision.
//
// Expressions are taken from the arguments, or else read one per line from
// standard input. When standard input is a terminal, abacus runs an
// interactive session. Lines beginning with a colon are commands; :help lists
// them.
package main

import (
	"errors"
	"log"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs abacus with os.Args and returns the exit code.
func Main() int {
	log.SetFlags(0)
	cmd := newRootCmd()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			log.Print(err)
		}
		return 1
	}
	return 0
}
