package compound

import (
	"fmt"
	"math"

	"lendingpool/core"
	"lendingpool/pkg/number"
)

func add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%d + %d overflows: %w", a, b, core.ErrArithmeticFault)
	}

	return a + b, nil
}

func sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%d - %d underflows: %w", a, b, core.ErrArithmeticFault)
	}

	return a - b, nil
}

func mulDiv(a, b, c uint64) (uint64, error) {
	v, ok := number.MulDiv(a, b, c)
	if !ok {
		return 0, fmt.Errorf("%d * %d / %d: %w", a, b, c, core.ErrArithmeticFault)
	}

	return v, nil
}

func mulDivCeil(a, b, c uint64) (uint64, error) {
	v, ok := number.MulDivCeil(a, b, c)
	if !ok {
		return 0, fmt.Errorf("ceil(%d * %d / %d): %w", a, b, c, core.ErrArithmeticFault)
	}

	return v, nil
}
