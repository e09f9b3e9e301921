package compound

import (
	"fmt"
	"strconv"
	"time"

	"lendingpool/core"
	"lendingpool/pkg/number"

	"github.com/shopspring/decimal"
)

// MaxPrecision fractional digits of the exp series kept beyond the digits of
// the accrued total
const MaxPrecision = 16

// Elapsed whole seconds between last and now
func Elapsed(last, now time.Time) (uint64, error) {
	if last.After(now) {
		return 0, fmt.Errorf("last accrual %s after %s: %w", last.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano), core.ErrClockSkew)
	}

	return uint64(now.Sub(last) / time.Second), nil
}

// Accrue compounds total continuously for elapsed seconds:
// floor(total * e^(rate*elapsed))
func Accrue(total uint64, rate decimal.Decimal, elapsed uint64) (uint64, error) {
	if rate.IsNegative() {
		return 0, fmt.Errorf("negative interest rate %s: %w", rate, core.ErrArithmeticFault)
	}

	if total == 0 || elapsed == 0 || rate.IsZero() {
		return total, nil
	}

	precision := int32(len(strconv.FormatUint(total, 10))) + MaxPrecision
	factor, err := rate.Mul(number.FromUint64(elapsed)).ExpTaylor(precision)
	if err != nil {
		return 0, fmt.Errorf("exp(%s * %d): %v: %w", rate, elapsed, err, core.ErrArithmeticFault)
	}

	// the series result may be rounded up in its last digit, step below it so
	// the product never floors to more than the exact value
	factor = factor.Truncate(precision - 1).Sub(decimal.New(1, -(precision - 1)))

	v, ok := number.ToUint64(number.FromUint64(total).Mul(factor))
	if !ok {
		return 0, fmt.Errorf("accrue %d at %s for %ds overflows: %w", total, rate, elapsed, core.ErrArithmeticFault)
	}

	return v, nil
}

// AccruePool brings both pool totals forward to now. The accrual clock only
// advances by whole seconds so frequent calls never lose interest.
func AccruePool(pool *core.Pool, now time.Time) error {
	if pool.LastAccrualTime.IsZero() {
		pool.LastAccrualTime = now
		return nil
	}

	elapsed, err := Elapsed(pool.LastAccrualTime, now)
	if err != nil {
		return err
	}

	if elapsed == 0 {
		return nil
	}

	deposits, err := Accrue(pool.TotalDeposits, pool.InterestRate, elapsed)
	if err != nil {
		return err
	}

	borrows, err := Accrue(pool.TotalBorrows, pool.InterestRate, elapsed)
	if err != nil {
		return err
	}

	// rounding must never eat the reserve
	if deposits < borrows {
		deposits = borrows
	}

	pool.TotalDeposits = deposits
	pool.TotalBorrows = borrows
	pool.LastAccrualTime = pool.LastAccrualTime.Add(time.Duration(elapsed) * time.Second)
	return nil
}
