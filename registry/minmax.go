package registry

import (
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// fnMax returns the largest of its one or more arguments by the same
// ordering `<` uses: numeric, string, or instant comparison. Mixed,
// incomparable types are a type-mismatch error rather than a panic escaping
// the registry.
func fnMax(args []any) (any, error) {
	return extremum(args, 1)
}

// fnMin returns the smallest of its one or more arguments.
func fnMin(args []any) (any, error) {
	return extremum(args, -1)
}

func extremum(args []any, want int) (any, error) {
	best := args[0]
	for _, v := range args[1:] {
		c, ok := types.Compare(v, best)
		if !ok {
			return nil, celerr.NewEvalError(celerr.CategoryTypeMismatch, "cannot compare %s and %s", types.TypeName(v), types.TypeName(best))
		}
		if c == want {
			best = v
		}
	}
	return best, nil
}
