package registry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// Case converters use golang.org/x/text/cases rather than strings.ToUpper/
// strings.ToLower so that case mapping for non-ASCII scripts (Turkish
// dotless i, German eszett expansion, etc) follows Unicode's rules instead
// of Go's simple per-rune table.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func methodContains(receiver any, args []any) (any, error) {
	switch r := receiver.(type) {
	case string:
		s, ok := args[0].(string)
		if !ok {
			return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "contains() on string requires a string argument")
		}
		return strings.Contains(r, s), nil
	case types.List:
		for _, item := range r {
			if types.Equal(item, args[0]) {
				return true, nil
			}
		}
		return false, nil
	default:
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "contains() requires a string or list receiver")
	}
}

func methodStartsWith(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "startsWith() requires a string receiver")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "startsWith() requires a string argument")
	}
	return strings.HasPrefix(r, s), nil
}

func methodEndsWith(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "endsWith() requires a string receiver")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "endsWith() requires a string argument")
	}
	return strings.HasSuffix(r, s), nil
}

func methodToLowerCase(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "toLowerCase() requires a string receiver")
	}
	return lowerCaser.String(r), nil
}

func methodToUpperCase(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "toUpperCase() requires a string receiver")
	}
	return upperCaser.String(r), nil
}

func methodTrim(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "trim() requires a string receiver")
	}
	return strings.TrimSpace(r), nil
}

func methodReplace(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "replace() requires a string receiver")
	}
	from, ok1 := args[0].(string)
	to, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "replace() requires two string arguments")
	}
	return strings.ReplaceAll(r, from, to), nil
}

// methodSplit splits on a literal separator, never a pattern: strings.Split
// matches the separator text exactly and no regex engine is involved.
func methodSplit(receiver any, args []any) (any, error) {
	r, ok := receiver.(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "split() requires a string receiver")
	}
	sep, ok := args[0].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "split() requires a string separator")
	}
	parts := strings.Split(r, sep)
	result := make(types.List, len(parts))
	for i, p := range parts {
		result[i] = p
	}
	return result, nil
}

func methodSize(receiver any, args []any) (any, error) {
	return sizeOf(receiver)
}
