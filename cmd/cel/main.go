// Command cel is an interactive read-eval-print loop for the CEL evaluator,
// and a one-shot runner when given a file argument.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) > 1 {
		runFile(os.Args[1])
		return
	}
	startRepl(os.Stdin, os.Stdout)
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	result, err := evalLine(string(source), make(vars))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(formatResult(result))
}
