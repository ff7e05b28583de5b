package registry

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// fnTimestamp returns a timestamp value in one of three forms: called with
// no arguments, the current instant; called with a string, parsed via
// dateparse, which recognizes the common RFC3339/RFC822/SQL/Unix
// date-string layouts without the caller naming one up front; called with
// an integer, that value interpreted as epoch milliseconds.
func fnTimestamp(args []any) (any, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}
	switch v := args[0].(type) {
	case string:
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot parse %q as a timestamp: %s", v, err.Error())
		}
		return t, nil
	case int64:
		return time.UnixMilli(v), nil
	case types.Uint:
		return time.UnixMilli(int64(v)), nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "timestamp() requires a string or integer argument")
	}
}

// fnDuration parses a duration expressed as an integer magnitude followed
// by a unit suffix of h, m, or s (e.g. "90s", "3h"). time.ParseDuration
// accepts this format as a subset of its own, plus fractional magnitudes
// and combined units, which we pass through rather than reject.
func fnDuration(args []any) (any, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "duration() requires a string argument")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "cannot parse %q as a duration: %s", s, err.Error())
	}
	return types.Duration(d), nil
}

func asTimestamp(v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, celerr.NewEvalError(celerr.CategoryBadArgument, "expected a timestamp, got %s", types.TypeName(v))
	}
	return t, nil
}

// fnGetDate returns the day of the month, 1-31, in the system's local time
// zone.
func fnGetDate(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Day()), nil
}

// fnGetMonth returns the month as 0-11 (January is 0), matching the
// zero-based convention the source evaluator carried over rather than
// Go's 1-based time.Month — a known wrinkle, preserved deliberately.
func fnGetMonth(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Month()) - 1, nil
}

// fnGetFullYear returns the four-digit year in the local time zone.
func fnGetFullYear(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Year()), nil
}

func fnGetHours(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Hour()), nil
}

func fnGetMinutes(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Minute()), nil
}

func fnGetSeconds(args []any) (any, error) {
	t, err := asTimestamp(args[0])
	if err != nil {
		return nil, err
	}
	return int64(t.Local().Second()), nil
}
