// Package types defines the dynamically typed value lattice CEL expressions
// evaluate to: null, bool, int, uint, double, string, bytes, list, map,
// timestamp, and duration. Values are plain Go types wherever possible so
// host code can hand them to the interpreter without an adapter layer.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Uint tags a 64-bit value as CEL's unsigned integer type. Go has no native
// unsigned-with-overflow-checking type that distinguishes itself from a
// plain int at the interface{} level, so uint values carry this wrapper
// rather than a bare uint64 — that keeps `type(x)` and mixed-arithmetic
// promotion unambiguous without reflection.
type Uint uint64

// List is CEL's ordered sequence value.
type List []any

// Map is CEL's key-to-value mapping. String keys dominate in practice but
// any comparable value (including integers) is a valid key, matching the
// AST's MapExpr which allows arbitrary key expressions.
type Map map[any]any

// Duration is CEL's elapsed-time value, backed by time.Duration.
type Duration time.Duration

// TypeName returns the lowercase type tag CEL's type() builtin reports for
// v: one of null, bool, int, uint, double, string, list, map, or unknown.
// Byte slices, timestamps, and durations have no tag of their own in this
// closed set and fall through to unknown, matching the original evaluator's
// typeOf.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case Uint:
		return "uint"
	case float64:
		return "double"
	case string:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// IsNumber reports whether v is one of CEL's three numeric kinds.
func IsNumber(v any) bool {
	switch v.(type) {
	case int64, Uint, float64:
		return true
	default:
		return false
	}
}

// AsFloat widens any of CEL's numeric kinds to float64 for mixed arithmetic
// and comparison. It panics if v is not numeric; callers must check
// IsNumber first.
func AsFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case Uint:
		return float64(n)
	case float64:
		return n
	default:
		panic("AsFloat: not a number")
	}
}

// IsTruthy reports whether v satisfies CEL's various "boolean-true or fall
// through" rules used by &&, ||, the conditional operator, and macros: only
// the boolean value true counts, every other value (including false) does
// not.
func IsTruthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// CanonicalString renders v in CEL's canonical textual form, as used by the
// string() builtin and by the `+` operator's implicit string coercion of
// its non-string operand. null renders as "null", matching the source this
// evaluator was distilled from.
func CanonicalString(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case Uint:
		return strconv.FormatUint(uint64(n), 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case string:
		return n
	case []byte:
		return string(n)
	case time.Time:
		return n.UTC().Format(time.RFC3339Nano)
	case Duration:
		return time.Duration(n).String()
	case List:
		parts := make([]string, len(n))
		for i, e := range n {
			parts[i] = CanonicalString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Map:
		parts := make([]string, 0, len(n))
		for k, v := range n {
			parts = append(parts, fmt.Sprintf("%v: %v", k, CanonicalString(v)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", n)
	}
}

// Equal implements CEL's `==`: null equals only null, numeric equality
// coerces across int/uint/double, sequences equal iff same length and
// elementwise equal, mappings equal iff same size and every key in one maps
// to an equal value in the other. Cross-type equality is false, never an
// error. Both the interpreter's `==`/`!=` operators and the registry's
// collection methods (contains, in) share this single definition.
func Equal(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	if IsNumber(left) && IsNumber(right) {
		if isFloat(left) || isFloat(right) {
			return AsFloat(left) == AsFloat(right)
		}
		return asInt64(left) == asInt64(right)
	}

	if ll, ok := left.(List); ok {
		rl, ok := right.(List)
		if !ok || len(ll) != len(rl) {
			return false
		}
		for i := range ll {
			if !Equal(ll[i], rl[i]) {
				return false
			}
		}
		return true
	}

	if lm, ok := left.(Map); ok {
		rm, ok := right.(Map)
		if !ok || len(lm) != len(rm) {
			return false
		}
		for k, v := range lm {
			rv, present := rm[k]
			if !present || !Equal(v, rv) {
				return false
			}
		}
		return true
	}

	if lb, ok := left.([]byte); ok {
		rb, ok := right.([]byte)
		if !ok || len(lb) != len(rb) {
			return false
		}
		for i := range lb {
			if lb[i] != rb[i] {
				return false
			}
		}
		return true
	}

	if lt, ok := left.(string); ok {
		rt, ok := right.(string)
		return ok && lt == rt
	}

	if lt, ok := left.(bool); ok {
		rt, ok := right.(bool)
		return ok && lt == rt
	}

	// Cross-type equality for every other combination (timestamps,
	// durations) is exact-type comparability; anything else is false.
	return left == right
}

// Compare orders a pair of values: numbers by floating-point value, strings
// lexicographically by code unit, booleans false before true, timestamps and
// durations by instant/magnitude, and lists elementwise with a shorter
// prefix preceding the longer sequence that contains it. ok is false when
// left and right are not order-comparable, in which case callers should
// raise a type-mismatch error themselves.
func Compare(left, right any) (result int, ok bool) {
	if IsNumber(left) && IsNumber(right) {
		l, r := AsFloat(left), AsFloat(right)
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		default:
			return 0, true
		}
	}

	if lt, lok := left.(time.Time); lok {
		if rt, rok := right.(time.Time); rok {
			return lt.Compare(rt), true
		}
		return 0, false
	}

	if ld, lok := left.(Duration); lok {
		if rd, rok := right.(Duration); rok {
			switch {
			case ld < rd:
				return -1, true
			case ld > rd:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}

	if ls, lok := left.(string); lok {
		if rs, rok := right.(string); rok {
			switch {
			case ls < rs:
				return -1, true
			case ls > rs:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}

	if lb, lok := left.(bool); lok {
		if rb, rok := right.(bool); rok {
			if lb == rb {
				return 0, true
			}
			if !lb {
				return -1, true
			}
			return 1, true
		}
		return 0, false
	}

	if ll, lok := left.(List); lok {
		rl, rok := right.(List)
		if !rok {
			return 0, false
		}
		n := len(ll)
		if len(rl) < n {
			n = len(rl)
		}
		for i := 0; i < n; i++ {
			c, ok := Compare(ll[i], rl[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		switch {
		case len(ll) < len(rl):
			return -1, true
		case len(ll) > len(rl):
			return 1, true
		default:
			return 0, true
		}
	}

	return 0, false
}

func isFloat(v any) bool {
	_, ok := v.(float64)
	return ok
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case Uint:
		return int64(n)
	default:
		return 0
	}
}
