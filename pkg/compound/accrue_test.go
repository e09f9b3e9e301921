package compound

import (
	"errors"
	"math"
	"testing"
	"time"

	"lendingpool/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrue(t *testing.T) {
	rate := decimal.RequireFromString("0.0000001")
	month := uint64(86400 * 30)

	t.Run("zero rate", func(t *testing.T) {
		v, err := Accrue(1000, decimal.Zero, month)
		require.Nil(t, err)
		assert.Equal(t, uint64(1000), v)
	})

	t.Run("zero elapsed", func(t *testing.T) {
		v, err := Accrue(1000, rate, 0)
		require.Nil(t, err)
		assert.Equal(t, uint64(1000), v)
	})

	t.Run("continuous compounding floors", func(t *testing.T) {
		v, err := Accrue(1000, rate, month)
		require.Nil(t, err)
		assert.Equal(t, uint64(math.Floor(1000*math.Exp(0.2592))), v)
		assert.Equal(t, uint64(1295), v)
	})

	t.Run("large totals floor exactly", func(t *testing.T) {
		rate := decimal.RequireFromString("0.000000001")
		for total, want := range map[uint64]uint64{
			1000000000000000000:  1001000500166708341,
			18000000000000000000: 18018009003000750150,
			12345678901234567890: 12358030755033380731,
		} {
			v, err := Accrue(total, rate, 1000000)
			require.Nil(t, err)
			assert.Equal(t, want, v, "total %d", total)
		}
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := Accrue(1000, rate.Neg(), month)
		assert.True(t, errors.Is(err, core.ErrArithmeticFault))
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Accrue(math.MaxUint64, rate, month)
		assert.True(t, errors.Is(err, core.ErrArithmeticFault))
	})
}

func TestElapsed(t *testing.T) {
	now := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)

	v, err := Elapsed(now.Add(-90*time.Second-300*time.Millisecond), now)
	require.Nil(t, err)
	assert.Equal(t, uint64(90), v)

	_, err = Elapsed(now.Add(time.Second), now)
	assert.True(t, errors.Is(err, core.ErrClockSkew))

	var code core.ErrorCode
	require.True(t, errors.As(err, &code))
	assert.True(t, code.IsFault())
}

func TestAccruePool(t *testing.T) {
	start := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("first accrual only starts the clock", func(t *testing.T) {
		pool := &core.Pool{InterestRate: decimal.RequireFromString("0.01")}
		require.Nil(t, AccruePool(pool, start))
		assert.Equal(t, start, pool.LastAccrualTime)
	})

	t.Run("both sides compound", func(t *testing.T) {
		pool := &core.Pool{
			TotalDeposits:      1000000,
			TotalDepositShares: 1000000,
			TotalBorrows:       500000,
			TotalBorrowShares:  500000,
			InterestRate:       decimal.RequireFromString("0.00000001"),
			LastAccrualTime:    start,
		}

		require.Nil(t, AccruePool(pool, start.Add(time.Hour+500*time.Millisecond)))
		assert.Equal(t, uint64(1000036), pool.TotalDeposits)
		assert.Equal(t, uint64(500018), pool.TotalBorrows)
		assert.Equal(t, uint64(1000000), pool.TotalDepositShares)
		assert.Equal(t, uint64(500000), pool.TotalBorrowShares)
		// sub-second remainder is carried to the next accrual
		assert.Equal(t, start.Add(time.Hour), pool.LastAccrualTime)
	})

	t.Run("clock skew leaves pool untouched", func(t *testing.T) {
		pool := &core.Pool{TotalDeposits: 10, TotalDepositShares: 10, InterestRate: decimal.RequireFromString("0.1"), LastAccrualTime: start}
		err := AccruePool(pool, start.Add(-time.Second))
		assert.True(t, errors.Is(err, core.ErrClockSkew))
		assert.Equal(t, uint64(10), pool.TotalDeposits)
		assert.Equal(t, start, pool.LastAccrualTime)
	})
}

func TestMonotonicPrice(t *testing.T) {
	start := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)
	pool := &core.Pool{
		TotalDeposits:      123457,
		TotalDepositShares: 100000,
		TotalBorrows:       50000,
		TotalBorrowShares:  45000,
		InterestRate:       decimal.RequireFromString("0.000000317"),
		LastAccrualTime:    start,
	}

	price := func() decimal.Decimal {
		return decimal.NewFromInt(int64(pool.TotalDeposits)).Div(decimal.NewFromInt(int64(pool.TotalDepositShares)))
	}

	last := price()
	now := start
	for _, step := range []time.Duration{time.Second, time.Minute, 7 * time.Hour, 24 * time.Hour, 90 * 24 * time.Hour} {
		now = now.Add(step)
		require.Nil(t, AccruePool(pool, now))
		p := price()
		assert.True(t, p.GreaterThanOrEqual(last), "price dropped from %s to %s", last, p)
		assert.True(t, pool.TotalDeposits >= pool.TotalBorrows)
		last = p
	}
}
