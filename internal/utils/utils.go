package utils

import (
	"fmt"
	"math/bits"
)

// AddUint64 returns a+b, failing instead of wrapping around
func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("uint64 overflow adding %d and %d", a, b)
	}
	return sum, nil
}
