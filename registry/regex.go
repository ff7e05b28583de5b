package registry

import (
	"regexp"

	"github.com/libdbm/gocel/celerr"
)

// fnMatches reports whether the regular expression in args[1] finds a match
// anywhere within the string in args[0] — a find, not a full-string match,
// mirroring the behavior of the pattern the original evaluator used this
// same stdlib package for.
func fnMatches(args []any) (any, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "matches() requires a string first argument")
	}
	pattern, ok := args[1].(string)
	if !ok {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "matches() requires a string pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, celerr.NewEvalError(celerr.CategoryBadArgument, "invalid regular expression %q: %s", pattern, err.Error())
	}
	return re.MatchString(s), nil
}
