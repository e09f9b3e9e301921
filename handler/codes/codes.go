package codes

import (
	"context"
	"errors"
	"net/http"

	"lendingpool/core"
)

// InvalidArguments malformed request body or query
const InvalidArguments = -1

var messages = map[core.ErrorCode]string{
	core.ErrUnknown:                "unknown error",
	core.ErrOperationForbidden:     "operation forbidden",
	core.ErrPoolNotFound:           "pool not found",
	core.ErrInvalidAmount:          "invalid amount",
	core.ErrPositionNotFound:       "position not found",
	core.ErrPoolExists:             "pool exists",
	core.ErrInsufficientFunds:      "insufficient funds",
	core.ErrOverBorrowableAmount:   "over borrowable amount",
	core.ErrOverRepay:              "over repay",
	core.ErrNotUnderCollateralized: "not under collateralized",
	core.ErrPaymentNotSettled:      "payment not settled",
	core.ErrVersionConflict:        "version conflict",
	core.ErrArithmeticFault:        "arithmetic fault",
	core.ErrClockSkew:              "clock skew",
}

// Get http status, error code and message for err
func Get(err error) (status int, code int, msg string) {
	var ec core.ErrorCode
	if !errors.As(err, &ec) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return http.StatusServiceUnavailable, int(core.ErrUnknown), err.Error()
		}

		return http.StatusInternalServerError, int(core.ErrUnknown), err.Error()
	}

	msg = messages[ec]
	if msg == "" {
		msg = ec.Error()
	}

	switch {
	case ec.IsFault(), ec == core.ErrUnknown:
		status = http.StatusInternalServerError
	case ec == core.ErrPoolNotFound, ec == core.ErrPositionNotFound:
		status = http.StatusNotFound
	case ec == core.ErrOperationForbidden:
		status = http.StatusForbidden
	case ec == core.ErrVersionConflict, ec == core.ErrPoolExists:
		status = http.StatusConflict
	default:
		status = http.StatusBadRequest
	}

	return status, int(ec), msg
}
