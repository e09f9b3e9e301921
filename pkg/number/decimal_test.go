package number

import (
	"math"
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304": "0.1",
		"0.119":   "0.11",
		"3":       "3",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Floor(Decimal(k), 2).String(), "should be floor")
		})
	}
}

func TestUint64(t *testing.T) {
	v, ok := ToUint64(FromUint64(math.MaxUint64))
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = ToUint64(FromUint64(math.MaxUint64).Add(Decimal("1")))
	assert.Equal(t, false, ok)

	_, ok = ToUint64(Decimal("-1"))
	assert.Equal(t, false, ok)

	v, ok = ToUint64(Decimal("12.99"))
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(12), v)
}

func TestMulDiv(t *testing.T) {
	v, ok := MulDiv(10, 3, 4)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(7), v)

	v, ok = MulDivCeil(10, 3, 4)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(8), v)

	v, ok = MulDivCeil(10, 4, 4)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(10), v)

	// intermediate product beyond uint64
	v, ok = MulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = MulDiv(math.MaxUint64, 2, 1)
	assert.Equal(t, false, ok)

	_, ok = MulDiv(1, 1, 0)
	assert.Equal(t, false, ok)
}
