package interpreter

import (
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/types"
)

// deepEqual implements CEL's `==` over the value lattice; see types.Equal
// for the shared definition the registry package also uses.
func deepEqual(left, right any) bool {
	return types.Equal(left, right)
}

// compare implements CEL's ordering operators. Cross-type ordering (and any
// other incomparable pair) is an evaluation error.
func compare(left, right any) int {
	c, ok := types.Compare(left, right)
	if !ok {
		panic(celerr.NewEvalError(celerr.CategoryTypeMismatch, "cannot compare types: %s and %s", types.TypeName(left), types.TypeName(right)))
	}
	return c
}
