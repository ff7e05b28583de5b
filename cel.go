// Package cel compiles and evaluates Common Expression Language
// expressions: a small, non-Turing-complete expression language meant to be
// embedded in a host application and evaluated against host-supplied
// variables.
//
// Compile once, evaluate many times:
//
//	program, err := cel.Compile("price * quantity > threshold")
//	if err != nil {
//	    return err
//	}
//	result, err := program.Evaluate(cel.Vars{"price": int64(10), "quantity": int64(5), "threshold": int64(40)})
//
// Eval is a convenience for the single-shot case:
//
//	result, err := cel.Eval("user.age >= 18", cel.Vars{"user": types.Map{"name": "Alice", "age": int64(25)}})
package cel

import (
	"github.com/libdbm/gocel/ast"
	"github.com/libdbm/gocel/interpreter"
	"github.com/libdbm/gocel/parser"
	"github.com/libdbm/gocel/registry"
)

// Vars is the variable environment a Program evaluates against. Keys name
// identifiers the expression may reference; values are any member of the
// dynamic value lattice (nil, bool, int64, types.Uint, float64, string,
// []byte, types.List, types.Map, time.Time, types.Duration).
type Vars = interpreter.Env

// Functions is the function/method library an evaluation dispatches
// built-in calls and method receivers through. StandardRegistry, from the
// registry package, is what every CEL constructed without an explicit
// registry uses; host applications that need additional functions should
// wrap StandardRegistry rather than reimplement it from scratch.
type Functions = interpreter.Registry

// standardFunctions is the function library every Program uses unless its
// CEL was built with WithFunctions.
var standardFunctions Functions = registry.New()

// A CEL evaluator. The zero value is ready to use and evaluates with the
// standard function library; construct one with WithFunctions to supply a
// custom or host-extended library instead.
type CEL struct {
	functions Functions
}

// Option configures a CEL constructed with New.
type Option func(*CEL)

// WithFunctions overrides the function/method library a CEL uses to
// compile and evaluate expressions. Absent this option, New uses the
// standard library from the registry package.
func WithFunctions(functions Functions) Option {
	return func(c *CEL) { c.functions = functions }
}

// New constructs a CEL evaluator, applying any options in order.
func New(opts ...Option) *CEL {
	c := &CEL{functions: standardFunctions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Program is a compiled CEL expression that can be evaluated repeatedly
// against different variable environments without re-parsing.
type Program struct {
	ast       ast.Node
	functions Functions
}

// Compile parses expression using the standard function library and
// returns a reusable Program. It is equivalent to New().Compile(expression).
func Compile(expression string) (*Program, error) {
	return New().Compile(expression)
}

// Compile parses expression against c's function library.
func (c *CEL) Compile(expression string) (*Program, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	functions := c.functions
	if functions == nil {
		functions = standardFunctions
	}
	return &Program{ast: node, functions: functions}, nil
}

// Eval parses and evaluates expression in one step, using the standard
// function library. It is equivalent to New().Eval(expression, vars).
// Prefer Compile when the same expression is evaluated more than once.
func Eval(expression string, vars Vars) (any, error) {
	return New().Eval(expression, vars)
}

// Eval parses and evaluates expression against c's function library in one
// step. Prefer Compile when the same expression is evaluated more than
// once.
func (c *CEL) Eval(expression string, vars Vars) (any, error) {
	program, err := c.Compile(expression)
	if err != nil {
		return nil, err
	}
	return program.Evaluate(vars)
}

// Evaluate runs the compiled program against vars. vars is read but never
// mutated: the interpreter saves and restores every binding it touches, so
// the map holds the same entries after Evaluate returns as before the call,
// even when the program panics or errors partway through.
func (p *Program) Evaluate(vars Vars) (any, error) {
	in := interpreter.New(p.functions)
	env := make(interpreter.Env, len(vars))
	for k, v := range vars {
		env[k] = v
	}
	return in.Eval(p.ast, env)
}
