package registry

import (
	"strconv"

	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// fnSize returns the length of a string, list, or map; size(null) is 0.
func fnSize(args []any) (any, error) {
	return sizeOf(args[0])
}

func sizeOf(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return int64(0), nil
	case string:
		return int64(len([]rune(t))), nil
	case []byte:
		return int64(len(t)), nil
	case types.List:
		return int64(len(t)), nil
	case types.Map:
		return int64(len(t)), nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "size() requires a string, list, or map")
	}
}

// fnInt coerces its argument to a signed 64-bit integer: int is itself,
// double truncates toward zero, string parses as a signed decimal, bool is
// 1/0.
func fnInt(args []any) (any, error) {
	return asInt(args[0])
}

func asInt(v any) (any, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case types.Uint:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot parse %q as int", t)
		}
		return n, nil
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot convert %s to int", types.TypeName(v))
	}
}

// fnUint is like fnInt but rejects a negative result.
func fnUint(args []any) (any, error) {
	v, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	n := v.(int64)
	if n < 0 {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "uint() result must be non-negative, got %d", n)
	}
	return types.Uint(n), nil
}

// fnDouble coerces its argument to a double from any numeric type or a
// parseable string.
func fnDouble(args []any) (any, error) {
	switch t := args[0].(type) {
	case int64:
		return float64(t), nil
	case types.Uint:
		return float64(t), nil
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot parse %q as double", t)
		}
		return f, nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot convert %s to double", types.TypeName(args[0]))
	}
}

// fnString renders its argument in canonical textual form; null renders as
// "null".
func fnString(args []any) (any, error) {
	return types.CanonicalString(args[0]), nil
}

// fnBool coerces its argument per CEL's truthiness rule: a non-zero number,
// a non-empty string/list/map, or the boolean itself.
func fnBool(args []any) (any, error) {
	switch t := args[0].(type) {
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case types.Uint:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		return len(t) != 0, nil
	case []byte:
		return len(t) != 0, nil
	case types.List:
		return len(t) != 0, nil
	case types.Map:
		return len(t) != 0, nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot convert %s to bool", types.TypeName(args[0]))
	}
}

// fnType returns the lowercase type tag of its argument.
func fnType(args []any) (any, error) {
	return types.TypeName(args[0]), nil
}

// fnHas reports whether a map has the named key; returns false for any
// other receiver rather than erroring, matching has()'s presence-test
// semantics.
func fnHas(args []any) (any, error) {
	m, ok := args[0].(types.Map)
	if !ok {
		return false, nil
	}
	_, present := m[args[1]]
	return present, nil
}
