// Package interpreter tree-walks a parsed CEL ast.Node against a bound Env,
// delegating global function and method calls to a Registry.
package interpreter

import (
	"github.com/libdbm/gocel/ast"
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// Interpreter evaluates AST nodes against an environment, calling through to
// Functions for anything it doesn't implement natively (conversions,
// string/regex/date helpers, etc).
type Interpreter struct {
	Functions Registry
}

// New constructs an Interpreter backed by the given function registry.
func New(functions Registry) *Interpreter {
	return &Interpreter{Functions: functions}
}

// Eval evaluates node against env, returning the resulting value or a
// *celerr.EvalError describing the first failure.
func (in *Interpreter) Eval(node ast.Node, env Env) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ee, ok := r.(*celerr.EvalError); ok {
				err = ee
				return
			}
			panic(r)
		}
	}()
	return in.eval(node, env), nil
}

// eval is the internal recursive walker; it panics with *celerr.EvalError on
// failure and is always entered through Eval's recover boundary.
func (in *Interpreter) eval(node ast.Node, env Env) any {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value
	case *ast.Identifier:
		return in.evalIdentifier(n, env)
	case *ast.Select:
		return in.evalSelect(n, env)
	case *ast.Index:
		return in.evalIndex(n, env)
	case *ast.Call:
		return in.evalCall(n, env)
	case *ast.ListExpr:
		return in.evalList(n, env)
	case *ast.MapExpr:
		return in.evalMap(n, env)
	case *ast.Struct:
		return in.evalStruct(n, env)
	case *ast.Unary:
		return in.evalUnary(n, env)
	case *ast.Binary:
		return in.evalBinary(n, env)
	case *ast.Conditional:
		return in.evalConditional(n, env)
	case *ast.Comprehension:
		return in.evalComprehension(n, env)
	default:
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "unsupported AST node: %T", node))
	}
}

func (in *Interpreter) evalIdentifier(n *ast.Identifier, env Env) any {
	v, ok := env[n.Name]
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryUndefinedVariable, "undefined variable: %s", n.Name))
	}
	return v
}

func (in *Interpreter) evalSelect(n *ast.Select, env Env) any {
	var target any
	if n.Operand == nil {
		target = types.Map(toAnyMap(env))
	} else {
		target = in.eval(n.Operand, env)
	}

	if target == nil {
		if n.IsTest {
			return false
		}
		panic(celerr.NewEvalError(celerr.CategoryFieldNotFound, "cannot select field %s from null", n.Field))
	}

	m, ok := target.(types.Map)
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "cannot select field from non-map type"))
	}

	if n.IsTest {
		_, present := m[n.Field]
		return present
	}

	v, present := m[n.Field]
	if !present {
		panic(celerr.NewEvalError(celerr.CategoryFieldNotFound, "field %s not found", n.Field))
	}
	return v
}

func toAnyMap(env Env) map[any]any {
	m := make(map[any]any, len(env))
	for k, v := range env {
		m[k] = v
	}
	return m
}

func (in *Interpreter) evalIndex(n *ast.Index, env Env) any {
	operand := in.eval(n.Operand, env)
	index := in.eval(n.Index, env)

	if operand == nil {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "cannot index null value"))
	}

	switch v := operand.(type) {
	case types.List:
		idx, ok := asIndex(index)
		if !ok {
			panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "list index must be an integer"))
		}
		if idx < 0 || idx >= len(v) {
			panic(celerr.NewEvalError(celerr.CategoryIndexOutOfBounds, "list index out of bounds: %d", idx))
		}
		return v[idx]
	case types.Map:
		val, ok := v[index]
		if !ok {
			panic(celerr.NewEvalError(celerr.CategoryKeyNotFound, "map key not found: %v", index))
		}
		return val
	case string:
		idx, ok := asIndex(index)
		if !ok {
			panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "string index must be an integer"))
		}
		runes := []rune(v)
		if idx < 0 || idx >= len(runes) {
			panic(celerr.NewEvalError(celerr.CategoryIndexOutOfBounds, "string index out of bounds: %d", idx))
		}
		return string(runes[idx])
	default:
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "cannot index type: %s", types.TypeName(operand)))
	}
}

func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case types.Uint:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func (in *Interpreter) evalList(n *ast.ListExpr, env Env) any {
	result := make(types.List, len(n.Elements))
	for i, e := range n.Elements {
		result[i] = in.eval(e, env)
	}
	return result
}

func (in *Interpreter) evalMap(n *ast.MapExpr, env Env) any {
	result := make(types.Map, len(n.Entries))
	for _, e := range n.Entries {
		key := in.eval(e.Key, env)
		value := in.eval(e.Value, env)
		result[key] = value
	}
	return result
}

func (in *Interpreter) evalStruct(n *ast.Struct, env Env) any {
	result := make(types.Map, len(n.Fields))
	for _, f := range n.Fields {
		result[f.Field] = in.eval(f.Value, env)
	}
	return result
}

func (in *Interpreter) evalUnary(n *ast.Unary, env Env) any {
	operand := in.eval(n.Operand, env)

	switch n.Op {
	case ast.NOT:
		b, ok := operand.(bool)
		if !ok {
			panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "NOT operator requires boolean operand"))
		}
		return !b
	case ast.NEGATE:
		switch v := operand.(type) {
		case int64:
			return -v
		case float64:
			return -v
		default:
			panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "negation requires numeric operand"))
		}
	default:
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "unknown unary operator"))
	}
}

func (in *Interpreter) evalConditional(n *ast.Conditional, env Env) any {
	if types.IsTruthy(in.eval(n.Condition, env)) {
		return in.eval(n.Then, env)
	}
	return in.eval(n.Else, env)
}
