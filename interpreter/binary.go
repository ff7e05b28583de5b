package interpreter

import (
	"strings"

	"github.com/libdbm/gocel/ast"
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

func (in *Interpreter) evalBinary(n *ast.Binary, env Env) any {
	// Short-circuit logical operators: the unevaluated side's errors must
	// never surface once the left operand already determines the result.
	if n.Op == ast.AND {
		left := in.eval(n.Left, env)
		if !types.IsTruthy(left) {
			return false
		}
		return types.IsTruthy(in.eval(n.Right, env))
	}
	if n.Op == ast.OR {
		left := in.eval(n.Left, env)
		if types.IsTruthy(left) {
			return true
		}
		return types.IsTruthy(in.eval(n.Right, env))
	}

	left := in.eval(n.Left, env)
	right := in.eval(n.Right, env)

	switch n.Op {
	case ast.ADD:
		return evalAdd(left, right)
	case ast.SUB:
		return evalSub(left, right)
	case ast.MUL:
		return evalMul(left, right)
	case ast.DIV:
		return evalDiv(left, right)
	case ast.MOD:
		return evalMod(left, right)
	case ast.EQ:
		return deepEqual(left, right)
	case ast.NE:
		return !deepEqual(left, right)
	case ast.LT:
		return compare(left, right) < 0
	case ast.LE:
		return compare(left, right) <= 0
	case ast.GT:
		return compare(left, right) > 0
	case ast.GE:
		return compare(left, right) >= 0
	case ast.IN:
		return evalIn(left, right)
	default:
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "unknown binary operator"))
	}
}

// evalAdd implements the overloaded `+`: string concatenation (string wins
// over any other operand via its string form), sequence concatenation, and
// numeric addition.
func evalAdd(left, right any) any {
	if ls, ok := left.(string); ok {
		return ls + stringOf(right)
	}
	if rs, ok := right.(string); ok {
		return stringOf(left) + rs
	}
	if ll, ok := left.(types.List); ok {
		if rl, ok := right.(types.List); ok {
			result := make(types.List, 0, len(ll)+len(rl))
			result = append(result, ll...)
			result = append(result, rl...)
			return result
		}
	}
	if types.IsNumber(left) && types.IsNumber(right) {
		return addNumbers(left, right)
	}
	panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "invalid operands for addition"))
}

func evalSub(left, right any) any {
	if types.IsNumber(left) && types.IsNumber(right) {
		return subNumbers(left, right)
	}
	panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "subtraction requires numeric operands"))
}

// evalMul implements the overloaded `*`: numeric multiplication, string
// repetition, and sequence repetition.
func evalMul(left, right any) any {
	if types.IsNumber(left) && types.IsNumber(right) {
		return mulNumbers(left, right)
	}
	if s, ok := left.(string); ok {
		if n, ok := repeatCount(right); ok {
			return strings.Repeat(s, n)
		}
	}
	if l, ok := left.(types.List); ok {
		if n, ok := repeatCount(right); ok {
			if n < 0 {
				panic(celerr.NewEvalError(celerr.CategoryBadArgument, "sequence repetition count must be non-negative"))
			}
			result := make(types.List, 0, len(l)*n)
			for i := 0; i < n; i++ {
				result = append(result, l...)
			}
			return result
		}
	}
	panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "invalid operands for multiplication"))
}

func repeatCount(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case types.Uint:
		return int(n), true
	default:
		return 0, false
	}
}

// evalDiv always produces a double; division by zero errors.
func evalDiv(left, right any) any {
	if !types.IsNumber(left) || !types.IsNumber(right) {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "division requires numeric operands"))
	}
	r := types.AsFloat(right)
	if r == 0 {
		panic(celerr.NewEvalError(celerr.CategoryDivideByZero, "division by zero"))
	}
	return types.AsFloat(left) / r
}

// evalMod requires integer operands; the sign follows the dividend.
func evalMod(left, right any) any {
	l, lok := asInt(left)
	r, rok := asInt(right)
	if !lok || !rok {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "modulo requires integer operands"))
	}
	if r == 0 {
		panic(celerr.NewEvalError(celerr.CategoryDivideByZero, "modulo by zero"))
	}
	return l % r
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case types.Uint:
		return int64(n), true
	default:
		return 0, false
	}
}

// evalIn implements `in`: list membership (deep equality), map key
// presence, or string substring containment.
func evalIn(left, right any) any {
	switch r := right.(type) {
	case types.List:
		for _, item := range r {
			if deepEqual(item, left) {
				return true
			}
		}
		return false
	case types.Map:
		_, ok := r[left]
		return ok
	case string:
		substr, ok := left.(string)
		if !ok {
			panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "in operator on string requires string left operand"))
		}
		return strings.Contains(r, substr)
	default:
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "in operator requires list, map, or string on right side"))
	}
}

// addNumbers/subNumbers/mulNumbers implement CEL's mixed-type numeric
// promotion: if either operand is a double, both promote to double and the
// result is double; otherwise the result is integer.
func addNumbers(left, right any) any {
	if isFloating(left) || isFloating(right) {
		return types.AsFloat(left) + types.AsFloat(right)
	}
	l, _ := asInt(left)
	r, _ := asInt(right)
	return l + r
}

func subNumbers(left, right any) any {
	if isFloating(left) || isFloating(right) {
		return types.AsFloat(left) - types.AsFloat(right)
	}
	l, _ := asInt(left)
	r, _ := asInt(right)
	return l - r
}

func mulNumbers(left, right any) any {
	if isFloating(left) || isFloating(right) {
		return types.AsFloat(left) * types.AsFloat(right)
	}
	l, _ := asInt(left)
	r, _ := asInt(right)
	return l * r
}

func isFloating(v any) bool {
	_, ok := v.(float64)
	return ok
}

// stringOf renders v in its canonical textual form for use as the
// non-string operand of string concatenation.
func stringOf(v any) string {
	return types.CanonicalString(v)
}
