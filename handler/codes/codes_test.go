package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lendingpool/core"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	for _, c := range []struct {
		err    error
		status int
		code   int
	}{
		{core.ErrOverRepay, http.StatusBadRequest, 100202},
		{core.ErrInsufficientFunds, http.StatusBadRequest, 100200},
		{core.ErrPoolNotFound, http.StatusNotFound, 100100},
		{core.ErrVersionConflict, http.StatusConflict, 100300},
		{fmt.Errorf("settle 1: %w", core.ErrPaymentNotSettled), http.StatusBadRequest, 100204},
		{fmt.Errorf("mul overflow: %w", core.ErrArithmeticFault), http.StatusInternalServerError, 100900},
		{errors.New("db gone"), http.StatusInternalServerError, 100000},
	} {
		status, code, _ := Get(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
		assert.Equal(t, c.code, code, c.err.Error())
	}

	_, _, msg := Get(core.ErrNotUnderCollateralized)
	assert.Equal(t, "not under collateralized", msg)
}
