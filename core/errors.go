package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrPoolNotFound no pool for asset
	ErrPoolNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100102
	// ErrPoolExists pool already initialized
	ErrPoolExists ErrorCode = 100103

	// ErrInsufficientFunds not enough deposited value or pool reserve
	ErrInsufficientFunds ErrorCode = 100200
	// ErrOverBorrowableAmount borrow exceeds collateral value
	ErrOverBorrowableAmount ErrorCode = 100201
	// ErrOverRepay repay exceeds debt
	ErrOverRepay ErrorCode = 100202
	// ErrNotUnderCollateralized target is healthy
	ErrNotUnderCollateralized ErrorCode = 100203
	// ErrPaymentNotSettled inbound payment missing or mismatched
	ErrPaymentNotSettled ErrorCode = 100204

	// ErrVersionConflict concurrent write lost the race
	ErrVersionConflict ErrorCode = 100300

	// ErrArithmeticFault overflow, underflow or division by zero
	ErrArithmeticFault ErrorCode = 100900
	// ErrClockSkew last accrual time is after now
	ErrClockSkew ErrorCode = 100901
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// IsFault reports whether the code is an internal invariant failure
// rather than a rejected request.
func (e ErrorCode) IsFault() bool {
	return e >= ErrArithmeticFault
}
