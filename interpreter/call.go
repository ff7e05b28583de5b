package interpreter

import (
	"github.com/libdbm/gocel/ast"
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

func (in *Interpreter) evalCall(n *ast.Call, env Env) any {
	if n.IsMacro && n.Target != nil {
		return in.evalMacro(n, env)
	}

	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		args[i] = in.eval(a, env)
	}

	if n.Target == nil {
		result, err := in.Functions.CallFunction(n.Function, args)
		if err != nil {
			panic(toEvalError(err))
		}
		return result
	}

	target := in.eval(n.Target, env)
	result, err := in.Functions.CallMethod(target, n.Function, args)
	if err != nil {
		panic(toEvalError(err))
	}
	return result
}

// toEvalError normalizes any error returned by the function registry into
// an *celerr.EvalError so the interpreter's panic/recover boundary only
// ever needs to handle one error type.
func toEvalError(err error) *celerr.EvalError {
	if ee, ok := err.(*celerr.EvalError); ok {
		return ee
	}
	return celerr.NewEvalError(celerr.CategoryBadArgument, "%s", err.Error())
}

// evalMacro evaluates map/filter/all/exists/existsOne. The target sequence
// is evaluated once; the iteration variable named by the macro's first
// (Identifier) argument is bound to each element in turn while evaluating
// the second argument expression, with its prior binding saved and restored
// whether the macro runs to completion or panics partway through.
func (in *Interpreter) evalMacro(n *ast.Call, env Env) any {
	target := in.eval(n.Target, env)
	list, ok := target.(types.List)
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "macro %s requires a list target", n.Function))
	}

	if len(n.Args) < 2 {
		panic(celerr.NewEvalError(celerr.CategoryBadArgument, "macro %s requires an iteration variable and an expression", n.Function))
	}

	iterIdent, ok := n.Args[0].(*ast.Identifier)
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryBadArgument, "first argument to macro %s must be a variable name", n.Function))
	}
	name := iterIdent.Name
	expr := n.Args[1]

	b := save(env, name)
	defer restore(env, b)

	switch n.Function {
	case "map":
		result := make(types.List, 0, len(list))
		for _, item := range list {
			env[name] = item
			result = append(result, in.eval(expr, env))
		}
		return result
	case "filter":
		result := make(types.List, 0, len(list))
		for _, item := range list {
			env[name] = item
			if types.IsTruthy(in.eval(expr, env)) {
				result = append(result, item)
			}
		}
		return result
	case "all":
		for _, item := range list {
			env[name] = item
			if !types.IsTruthy(in.eval(expr, env)) {
				return false
			}
		}
		return true
	case "exists":
		for _, item := range list {
			env[name] = item
			if types.IsTruthy(in.eval(expr, env)) {
				return true
			}
		}
		return false
	case "existsOne":
		count := 0
		for _, item := range list {
			env[name] = item
			if types.IsTruthy(in.eval(expr, env)) {
				count++
				if count > 1 {
					return false
				}
			}
		}
		return count == 1
	default:
		panic(celerr.NewEvalError(celerr.CategoryUnknownFunction, "unknown macro function: %s", n.Function))
	}
}

// evalComprehension implements the generalized fold backing ast.Comprehension
// nodes: bind Accumulator to Init, then for each element of Range bind
// IterVar and, if Condition holds, rebind Accumulator to Step's result.
// Both iteration and accumulator bindings are restored on every exit path.
func (in *Interpreter) evalComprehension(n *ast.Comprehension, env Env) any {
	rangeVal := in.eval(n.Range, env)
	list, ok := rangeVal.(types.List)
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "comprehension range must be a list"))
	}

	iterBinding := save(env, n.IterVar)
	accBinding := save(env, n.Accumulator)
	defer restore(env, iterBinding)
	defer restore(env, accBinding)

	env[n.Accumulator] = in.eval(n.Init, env)

	for _, item := range list {
		env[n.IterVar] = item
		if !types.IsTruthy(in.eval(n.Condition, env)) {
			continue
		}
		env[n.Accumulator] = in.eval(n.Step, env)
	}

	return in.eval(n.Result, env)
}
