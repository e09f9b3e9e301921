package core

import "github.com/shopspring/decimal"

// Health collateralization of one participant, values in the common unit
type Health struct {
	UserID          string          `json:"user_id"`
	SupplyValue     decimal.Decimal `json:"supply_value"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	DebtValue       decimal.Decimal `json:"debt_value"`
	// meaningless when Infinite
	Factor   decimal.Decimal `json:"factor"`
	Infinite bool            `json:"infinite"`
}

// Liquidatable health factor below one
func (h *Health) Liquidatable() bool {
	return !h.Infinite && h.Factor.LessThan(decimal.NewFromInt(1))
}

// Borrowable remaining borrow capacity
func (h *Health) Borrowable() decimal.Decimal {
	left := h.CollateralValue.Sub(h.DebtValue)
	if left.IsNegative() {
		return decimal.Zero
	}

	return left
}

// RiskService collateralization rules
type RiskService interface {
	Health(userID string, positions []*Position, pools map[string]*Pool) (*Health, error)
	BorrowAllowed(health *Health, amount uint64) error
	WithdrawAllowed(health *Health, pool *Pool, amount uint64) error
	LiquidationAllowed(health *Health) error
	// Seize returns the repay actually applied and the collateral seized for it
	Seize(debt, repay, available uint64) (repaid, seized uint64, err error)
}
