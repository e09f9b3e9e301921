package compound

import (
	"lendingpool/core"
)

// DepositedValue underlying the position can withdraw, rounded down
func DepositedValue(pos *core.Position, pool *core.Pool) (uint64, error) {
	return DepositAmount(pool, pos.DepositShares)
}

// BorrowedValue debt of the position, rounded up
func BorrowedValue(pos *core.Position, pool *core.Pool) (uint64, error) {
	return BorrowAmount(pool, pos.BorrowShares)
}

func AddDepositShares(pos *core.Position, shares uint64) error {
	v, err := add(pos.DepositShares, shares)
	if err != nil {
		return err
	}

	pos.DepositShares = v
	return nil
}

func SubDepositShares(pos *core.Position, shares uint64) error {
	v, err := sub(pos.DepositShares, shares)
	if err != nil {
		return err
	}

	pos.DepositShares = v
	return nil
}

func AddBorrowShares(pos *core.Position, shares uint64) error {
	v, err := add(pos.BorrowShares, shares)
	if err != nil {
		return err
	}

	pos.BorrowShares = v
	return nil
}

func SubBorrowShares(pos *core.Position, shares uint64) error {
	v, err := sub(pos.BorrowShares, shares)
	if err != nil {
		return err
	}

	pos.BorrowShares = v
	return nil
}
