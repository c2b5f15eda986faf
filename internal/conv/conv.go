// Package conv holds checked integer narrowing.
//
// An out-of-range value here means an automaton outgrew the limits the
// compiler enforces, so the conversions panic rather than return errors.
package conv

import "math"

// IntToUint32 narrows n to uint32, panicking when n is negative or larger
// than math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct where int is 32 bits wide
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int out of uint32 range")
	}
	return uint32(n)
}
