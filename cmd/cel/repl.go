package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/libdbm/gocel"
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

const prompt = "cel> "
const continuationPrompt = "...> "

type vars = cel.Vars

// completionWords lists the identifiers tab completion offers: the standard
// function and method registry's names plus the handful of REPL meta
// commands.
var completionWords = []string{
	"size", "int", "uint", "double", "string", "bool", "type", "has", "matches",
	"timestamp", "duration", "getDate", "getMonth", "getFullYear", "getHours",
	"getMinutes", "getSeconds", "max", "min",
	"contains", "startsWith", "endsWith", "toLowerCase", "toUpperCase", "trim",
	"replace", "split",
	"map", "filter", "all", "exists", "existsOne",
	"true", "false", "null", "in",
	":help", ":env", ":let", ":clear",
}

func startRepl(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(text string) []string {
		return filterCompletions(text)
	})

	historyFile := filepath.Join(os.TempDir(), ".cel_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	env := make(vars)

	fmt.Fprintln(out, "CEL expression evaluator")
	fmt.Fprintln(out, "Type an expression to evaluate it, 'exit' or Ctrl+D to quit.")
	fmt.Fprintln(out, "Type ':help' for REPL commands.")
	fmt.Fprintln(out)

	var buffer strings.Builder

	for {
		currentPrompt := prompt
		if buffer.Len() > 0 {
			currentPrompt = continuationPrompt
		}
		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if buffer.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
					buffer.Reset()
				} else {
					fmt.Fprintln(out, "^C")
				}
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		if buffer.Len() == 0 && strings.HasPrefix(trimmed, ":") {
			handleCommand(trimmed, env, out)
			continue
		}

		if buffer.Len() == 0 && trimmed == "" {
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(input)

		full := buffer.String()
		if needsMoreInput(full) {
			continue
		}

		line.AppendHistory(full)
		buffer.Reset()

		result, err := evalLine(full, env)
		if err != nil {
			printError(out, err)
			continue
		}
		fmt.Fprintln(out, formatResult(result))
	}
}

// evalLine compiles and evaluates source against env in one step.
func evalLine(source string, env vars) (any, error) {
	return cel.Eval(source, env)
}

func formatResult(v any) string {
	return types.CanonicalString(v)
}

func printError(out io.Writer, err error) {
	if se, ok := err.(*celerr.SyntaxError); ok {
		fmt.Fprintf(out, "syntax error: %s (line %d, column %d)\n", se.Message, se.Line, se.Column)
		return
	}
	if ee, ok := err.(*celerr.EvalError); ok {
		fmt.Fprintf(out, "evaluation error [%s]: %s\n", ee.Category, ee.Message)
		return
	}
	fmt.Fprintln(out, err)
}

func handleCommand(cmd string, env vars, out io.Writer) {
	switch {
	case cmd == ":help" || cmd == ":h" || cmd == ":?":
		fmt.Fprintln(out, "REPL commands:")
		fmt.Fprintln(out, "  :help            Show this help")
		fmt.Fprintln(out, "  :env             Show bound variables")
		fmt.Fprintln(out, "  :let NAME=EXPR   Bind NAME to the result of evaluating EXPR")
		fmt.Fprintln(out, "  :clear           Unbind all variables")
		fmt.Fprintln(out, "  exit, quit       Exit the REPL")
	case cmd == ":env":
		printEnv(env, out)
	case cmd == ":clear":
		for k := range env {
			delete(env, k)
		}
		fmt.Fprintln(out, "environment cleared")
	case strings.HasPrefix(cmd, ":let "):
		handleLet(strings.TrimPrefix(cmd, ":let "), env, out)
	default:
		fmt.Fprintf(out, "unknown command: %s (type :help for commands)\n", cmd)
	}
}

func handleLet(assignment string, env vars, out io.Writer) {
	name, expr, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		fmt.Fprintln(out, "usage: :let NAME=EXPR")
		return
	}
	result, err := evalLine(strings.TrimSpace(expr), env)
	if err != nil {
		printError(out, err)
		return
	}
	env[name] = result
	fmt.Fprintf(out, "%s = %s\n", name, formatResult(result))
}

func printEnv(env vars, out io.Writer) {
	if len(env) == 0 {
		fmt.Fprintln(out, "(no bound variables)")
		return
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %s\n", name, formatResult(env[name]))
	}
}

func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasSuffix(line, " ") {
		return nil
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	var matches []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, last) {
			matches = append(matches, w)
		}
	}
	return matches
}

// needsMoreInput reports whether input has unbalanced brackets, braces, or
// parentheses, so a multi-line list or map literal can span several prompts
// before it is parsed.
func needsMoreInput(input string) bool {
	depth := 0
	inString := false
	var quote byte
	escapeNext := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		if inString {
			if ch == '\\' {
				escapeNext = true
			} else if ch == quote {
				inString = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inString = true
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0
}
