// Package registry implements the standard CEL function and method library:
// type conversions, string operations, regex matching, collection helpers,
// timestamp/duration support, and min/max. It is the default
// interpreter.Registry a Program uses when the host supplies none of its
// own, and its declarative dispatch tables double as the seam a host
// extends when wrapping StandardRegistry with additional functions.
package registry

import (
	"fmt"

	"github.com/libdbm/gocel/celerr"
)

// FunctionFunc is the signature every global function implementation
// shares; arity is validated by the caller before Fn runs.
type FunctionFunc func(args []any) (any, error)

// MethodFunc is the signature every receiver-dispatched method shares.
type MethodFunc func(receiver any, args []any) (any, error)

// FunctionEntry pairs a global function's implementation with its expected
// arity, expressed the same way basil's declarative method registry does:
// "0", "1", "2", "0-1", "1+", etc.
type FunctionEntry struct {
	Fn    FunctionFunc
	Arity string
}

// MethodEntry pairs a method implementation with its arity.
type MethodEntry struct {
	Fn    MethodFunc
	Arity string
}

// StandardRegistry implements interpreter.Registry with CEL's built-in
// function and method library. The zero value is ready to use.
type StandardRegistry struct{}

// New constructs a StandardRegistry.
func New() *StandardRegistry {
	return &StandardRegistry{}
}

var functions map[string]FunctionEntry
var methods map[string]MethodEntry

func init() {
	functions = buildFunctionTable()
	methods = buildMethodTable()
}

// CallFunction dispatches a global function call by name.
func (r *StandardRegistry) CallFunction(name string, args []any) (any, error) {
	entry, ok := functions[name]
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryUnknownFunction, "unknown function: %s", name)
	}
	if !checkArity(entry.Arity, len(args)) {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "%s() does not accept %d argument(s)", name, len(args))
	}
	return entry.Fn(args)
}

// CallMethod dispatches a receiver-typed method call by name.
func (r *StandardRegistry) CallMethod(receiver any, name string, args []any) (any, error) {
	if receiver == nil {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot call method on null")
	}
	entry, ok := methods[name]
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryUnknownFunction, "unknown method: %s", name)
	}
	if !checkArity(entry.Arity, len(args)) {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "%s() does not accept %d argument(s)", name, len(args))
	}
	return entry.Fn(receiver, args)
}

// checkArity validates argument count against a basil-style arity spec: an
// exact count ("2"), "N+" meaning N or more, or "A-B" meaning between A and
// B inclusive.
func checkArity(spec string, got int) bool {
	if len(spec) > 0 && spec[len(spec)-1] == '+' {
		var min int
		fmt.Sscanf(spec, "%d", &min)
		return got >= min
	}
	var lo, hi int
	if n, _ := fmt.Sscanf(spec, "%d-%d", &lo, &hi); n == 2 {
		return got >= lo && got <= hi
	}
	var n int
	fmt.Sscanf(spec, "%d", &n)
	return got == n
}

func buildFunctionTable() map[string]FunctionEntry {
	return map[string]FunctionEntry{
		"size":        {Fn: fnSize, Arity: "1"},
		"int":         {Fn: fnInt, Arity: "1"},
		"uint":        {Fn: fnUint, Arity: "1"},
		"double":      {Fn: fnDouble, Arity: "1"},
		"string":      {Fn: fnString, Arity: "1"},
		"bool":        {Fn: fnBool, Arity: "1"},
		"type":        {Fn: fnType, Arity: "1"},
		"has":         {Fn: fnHas, Arity: "2"},
		"matches":     {Fn: fnMatches, Arity: "2"},
		"timestamp":   {Fn: fnTimestamp, Arity: "0-1"},
		"duration":    {Fn: fnDuration, Arity: "1"},
		"getDate":     {Fn: fnGetDate, Arity: "1"},
		"getMonth":    {Fn: fnGetMonth, Arity: "1"},
		"getFullYear": {Fn: fnGetFullYear, Arity: "1"},
		"getHours":    {Fn: fnGetHours, Arity: "1"},
		"getMinutes":  {Fn: fnGetMinutes, Arity: "1"},
		"getSeconds":  {Fn: fnGetSeconds, Arity: "1"},
		"max":         {Fn: fnMax, Arity: "1+"},
		"min":         {Fn: fnMin, Arity: "1+"},
	}
}

func buildMethodTable() map[string]MethodEntry {
	return map[string]MethodEntry{
		"contains":    {Fn: methodContains, Arity: "1"},
		"startsWith":  {Fn: methodStartsWith, Arity: "1"},
		"endsWith":    {Fn: methodEndsWith, Arity: "1"},
		"toLowerCase": {Fn: methodToLowerCase, Arity: "0"},
		"toUpperCase": {Fn: methodToUpperCase, Arity: "0"},
		"trim":        {Fn: methodTrim, Arity: "0"},
		"replace":     {Fn: methodReplace, Arity: "2"},
		"split":       {Fn: methodSplit, Arity: "1"},
		"size":        {Fn: methodSize, Arity: "0"},
	}
}
