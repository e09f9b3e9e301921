package compound

import (
	"fmt"

	"lendingpool/core"
)

// Every mutating function validates before writing; on error the pool is untouched.
// Callers accrue the pool first.

// DepositAmount underlying value of deposit shares, rounded down
func DepositAmount(pool *core.Pool, shares uint64) (uint64, error) {
	if shares == 0 {
		return 0, nil
	}

	return mulDiv(shares, pool.TotalDeposits, pool.TotalDepositShares)
}

// BorrowAmount debt of borrow shares, rounded up
func BorrowAmount(pool *core.Pool, shares uint64) (uint64, error) {
	if shares == 0 {
		return 0, nil
	}

	return mulDivCeil(shares, pool.TotalBorrows, pool.TotalBorrowShares)
}

// DepositSharesFor mints deposit shares for amount
func DepositSharesFor(pool *core.Pool, amount uint64) (uint64, error) {
	if err := pool.Validate(); err != nil {
		return 0, err
	}

	if amount == 0 {
		return 0, core.ErrInvalidAmount
	}

	shares := amount
	if pool.TotalDepositShares > 0 {
		var err error
		if shares, err = mulDiv(amount, pool.TotalDepositShares, pool.TotalDeposits); err != nil {
			return 0, err
		}
	}

	// dust below one share
	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	deposits, err := add(pool.TotalDeposits, amount)
	if err != nil {
		return 0, err
	}

	total, err := add(pool.TotalDepositShares, shares)
	if err != nil {
		return 0, err
	}

	pool.TotalDeposits = deposits
	pool.TotalDepositShares = total
	return shares, nil
}

// SharesToWithdraw deposit shares burned to pay out amount, rounded up
func SharesToWithdraw(pool *core.Pool, amount uint64) (uint64, error) {
	if amount > pool.TotalDeposits {
		return 0, core.ErrInsufficientFunds
	}

	return mulDivCeil(amount, pool.TotalDepositShares, pool.TotalDeposits)
}

// WithdrawShares burns shares and returns the amount paid out, rounded down
func WithdrawShares(pool *core.Pool, shares uint64) (uint64, error) {
	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	if shares > pool.TotalDepositShares {
		return 0, core.ErrInsufficientFunds
	}

	amount, err := DepositAmount(pool, shares)
	if err != nil {
		return 0, err
	}

	if amount == 0 {
		return 0, core.ErrInvalidAmount
	}

	if err := RemoveDeposit(pool, amount, shares); err != nil {
		return 0, err
	}

	return amount, nil
}

// RemoveDeposit takes amount and shares out of the deposit side
func RemoveDeposit(pool *core.Pool, amount, shares uint64) error {
	if err := pool.Validate(); err != nil {
		return err
	}

	deposits, err := sub(pool.TotalDeposits, amount)
	if err != nil {
		return err
	}

	total, err := sub(pool.TotalDepositShares, shares)
	if err != nil {
		return err
	}

	if deposits < pool.TotalBorrows {
		return core.ErrInsufficientFunds
	}

	if (deposits == 0) != (total == 0) {
		return fmt.Errorf("withdraw %d for %d shares leaves %d deposits on %d shares: %w", amount, shares, deposits, total, core.ErrArithmeticFault)
	}

	pool.TotalDeposits = deposits
	pool.TotalDepositShares = total
	return nil
}

// BorrowSharesFor mints borrow shares for amount, rounded up
func BorrowSharesFor(pool *core.Pool, amount uint64) (uint64, error) {
	if err := pool.Validate(); err != nil {
		return 0, err
	}

	if amount == 0 {
		return 0, core.ErrInvalidAmount
	}

	borrows, err := add(pool.TotalBorrows, amount)
	if err != nil {
		return 0, err
	}

	if borrows > pool.TotalDeposits {
		return 0, core.ErrInsufficientFunds
	}

	shares := amount
	if pool.TotalBorrowShares > 0 {
		if shares, err = mulDivCeil(amount, pool.TotalBorrowShares, pool.TotalBorrows); err != nil {
			return 0, err
		}
	}

	total, err := add(pool.TotalBorrowShares, shares)
	if err != nil {
		return 0, err
	}

	pool.TotalBorrows = borrows
	pool.TotalBorrowShares = total
	return shares, nil
}

// SharesToRepay borrow shares burned by paying amount, rounded down
func SharesToRepay(pool *core.Pool, amount uint64) (uint64, error) {
	if amount > pool.TotalBorrows {
		return 0, core.ErrOverRepay
	}

	return mulDiv(amount, pool.TotalBorrowShares, pool.TotalBorrows)
}

// RepayShares burns borrow shares and returns the amount owed for them, rounded up
func RepayShares(pool *core.Pool, shares uint64) (uint64, error) {
	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	if shares > pool.TotalBorrowShares {
		return 0, core.ErrOverRepay
	}

	amount, err := BorrowAmount(pool, shares)
	if err != nil {
		return 0, err
	}

	if err := RemoveBorrow(pool, amount, shares); err != nil {
		return 0, err
	}

	return amount, nil
}

// RemoveBorrow takes amount and shares out of the borrow side
func RemoveBorrow(pool *core.Pool, amount, shares uint64) error {
	if err := pool.Validate(); err != nil {
		return err
	}

	if amount > pool.TotalBorrows || shares > pool.TotalBorrowShares {
		return core.ErrOverRepay
	}

	borrows := pool.TotalBorrows - amount
	total := pool.TotalBorrowShares - shares
	if (borrows == 0) != (total == 0) {
		return fmt.Errorf("repay %d for %d shares leaves %d borrows on %d shares: %w", amount, shares, borrows, total, core.ErrArithmeticFault)
	}

	pool.TotalBorrows = borrows
	pool.TotalBorrowShares = total
	return nil
}
