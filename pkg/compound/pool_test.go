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

func TestDepositWithdrawShares(t *testing.T) {
	pool := &core.Pool{AssetID: "a"}
	pos := &core.Position{UserID: "u", AssetID: "a"}

	shares, err := DepositSharesFor(pool, 1000)
	require.Nil(t, err)
	require.Nil(t, AddDepositShares(pos, shares))
	assert.Equal(t, uint64(1000), pool.TotalDeposits)
	assert.Equal(t, uint64(1000), pool.TotalDepositShares)
	assert.Equal(t, uint64(1000), pos.DepositShares)

	burn, err := SharesToWithdraw(pool, 400)
	require.Nil(t, err)
	require.Nil(t, RemoveDeposit(pool, 400, burn))
	require.Nil(t, SubDepositShares(pos, burn))
	assert.Equal(t, uint64(600), pool.TotalDeposits)
	assert.Equal(t, uint64(600), pool.TotalDepositShares)
	assert.Equal(t, uint64(600), pos.DepositShares)
}

func TestAccruedFullWithdrawalShares(t *testing.T) {
	start := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)
	pool := &core.Pool{
		TotalDeposits:      1000,
		TotalDepositShares: 1000,
		InterestRate:       decimal.RequireFromString("0.0000001"),
		LastAccrualTime:    start,
	}

	require.Nil(t, AccruePool(pool, start.Add(30*24*time.Hour)))
	expect := uint64(math.Floor(1000 * math.Exp(0.0000001*86400*30)))
	assert.Equal(t, expect, pool.TotalDeposits)

	amount, err := WithdrawShares(pool, 1000)
	require.Nil(t, err)
	assert.Equal(t, expect, amount)
	assert.Equal(t, uint64(0), pool.TotalDeposits)
	assert.Equal(t, uint64(0), pool.TotalDepositShares)
}

func TestRoundTrip(t *testing.T) {
	for _, x := range []uint64{1, 7, 1000, 123456789, math.MaxUint64 / 2} {
		pool := &core.Pool{TotalDeposits: 3000, TotalDepositShares: 2000}
		before := *pool

		shares, err := DepositSharesFor(pool, x)
		if x == 1 {
			// one unit buys no share at a price above one
			assert.Equal(t, core.ErrInvalidAmount, err)
			continue
		}
		require.Nil(t, err)

		amount, err := WithdrawShares(pool, shares)
		require.Nil(t, err)
		assert.True(t, amount <= x && x-amount <= 1, "deposit %d returned %d", x, amount)
		assert.True(t, pool.TotalDeposits >= before.TotalDeposits)
		assert.Equal(t, before.TotalDepositShares, pool.TotalDepositShares)
	}

	t.Run("bootstrap pool returns exactly", func(t *testing.T) {
		pool := &core.Pool{}
		shares, err := DepositSharesFor(pool, 4242)
		require.Nil(t, err)
		amount, err := WithdrawShares(pool, shares)
		require.Nil(t, err)
		assert.Equal(t, uint64(4242), amount)
	})
}

func TestWithdrawReserve(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 1000, TotalDepositShares: 1000, TotalBorrows: 700, TotalBorrowShares: 700}
	before := *pool

	_, err := WithdrawShares(pool, 301)
	assert.Equal(t, core.ErrInsufficientFunds, err)
	assert.Equal(t, before, *pool)

	_, err = WithdrawShares(pool, 1001)
	assert.Equal(t, core.ErrInsufficientFunds, err)

	amount, err := WithdrawShares(pool, 300)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), amount)
	assert.Equal(t, uint64(0), pool.Reserve())
}

func TestRemoveDepositKeepsSharesBacked(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 10, TotalDepositShares: 1}
	err := RemoveDeposit(pool, 5, 1)
	assert.True(t, errors.Is(err, core.ErrArithmeticFault))
	assert.Equal(t, uint64(10), pool.TotalDeposits)
}

func TestBorrowRepay(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 1000, TotalDepositShares: 1000}

	_, err := BorrowSharesFor(pool, 1001)
	assert.Equal(t, core.ErrInsufficientFunds, err)
	assert.Equal(t, uint64(0), pool.TotalBorrows)

	shares, err := BorrowSharesFor(pool, 300)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), shares)

	// price of a borrow share rises to 1.5
	pool.TotalBorrows = 450
	pool.TotalDeposits = 1150

	shares, err = BorrowSharesFor(pool, 100)
	require.Nil(t, err)
	assert.Equal(t, uint64(67), shares, "borrow shares round up")
	assert.Equal(t, uint64(550), pool.TotalBorrows)
	assert.Equal(t, uint64(367), pool.TotalBorrowShares)

	debt, err := BorrowAmount(pool, 67)
	require.Nil(t, err)
	assert.Equal(t, uint64(101), debt, "debt rounds up")

	burn, err := SharesToRepay(pool, 100)
	require.Nil(t, err)
	assert.Equal(t, uint64(66), burn, "repay burns rounded down")

	_, err = RepayShares(pool, 368)
	assert.Equal(t, core.ErrOverRepay, err)

	amount, err := RepayShares(pool, 367)
	require.Nil(t, err)
	assert.Equal(t, uint64(550), amount)
	assert.Equal(t, uint64(0), pool.TotalBorrows)
	assert.Equal(t, uint64(0), pool.TotalBorrowShares)
}

func TestZeroAmounts(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 10, TotalDepositShares: 10}

	_, err := DepositSharesFor(pool, 0)
	assert.Equal(t, core.ErrInvalidAmount, err)
	_, err = BorrowSharesFor(pool, 0)
	assert.Equal(t, core.ErrInvalidAmount, err)
	_, err = WithdrawShares(pool, 0)
	assert.Equal(t, core.ErrInvalidAmount, err)
	_, err = RepayShares(pool, 0)
	assert.Equal(t, core.ErrInvalidAmount, err)
}

func TestCorruptPoolIsFault(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 10}
	_, err := DepositSharesFor(pool, 10)
	assert.True(t, errors.Is(err, core.ErrArithmeticFault))
}

func TestPositionValues(t *testing.T) {
	pool := &core.Pool{TotalDeposits: 1001, TotalDepositShares: 1000, TotalBorrows: 501, TotalBorrowShares: 500}
	pos := &core.Position{DepositShares: 3, BorrowShares: 3}

	d, err := DepositedValue(pos, pool)
	require.Nil(t, err)
	assert.Equal(t, uint64(3), d)

	b, err := BorrowedValue(pos, pool)
	require.Nil(t, err)
	assert.Equal(t, uint64(4), b)

	assert.True(t, errors.Is(SubDepositShares(pos, 4), core.ErrArithmeticFault))
	assert.Equal(t, uint64(3), pos.DepositShares)
	assert.True(t, errors.Is(AddBorrowShares(pos, math.MaxUint64), core.ErrArithmeticFault))
	assert.Equal(t, uint64(3), pos.BorrowShares)
}
