package risk

import (
	"fmt"

	"lendingpool/core"
	"lendingpool/pkg/compound"
	"lendingpool/pkg/number"

	"github.com/shopspring/decimal"
)

type riskService struct {
	threshold decimal.Decimal
	discount  decimal.Decimal
	close     decimal.Decimal
}

// New new risk service
func New(cfg core.RiskConfig) core.RiskService {
	return &riskService{
		threshold: cfg.LiquidationThreshold,
		discount:  cfg.LiquidationDiscount,
		close:     cfg.CloseFactor,
	}
}

// Health values every position against its (already accrued) pool
func (s *riskService) Health(userID string, positions []*core.Position, pools map[string]*core.Pool) (*core.Health, error) {
	h := &core.Health{
		UserID:          userID,
		SupplyValue:     decimal.Zero,
		CollateralValue: decimal.Zero,
		DebtValue:       decimal.Zero,
		Factor:          decimal.Zero,
	}

	for _, pos := range positions {
		if pos.DepositShares == 0 && pos.BorrowShares == 0 {
			continue
		}

		pool, ok := pools[pos.AssetID]
		if !ok {
			return nil, fmt.Errorf("value position of %s in %s: %w", pos.UserID, pos.AssetID, core.ErrPoolNotFound)
		}

		deposited, e := compound.DepositedValue(pos, pool)
		if e != nil {
			return nil, e
		}

		borrowed, e := compound.BorrowedValue(pos, pool)
		if e != nil {
			return nil, e
		}

		supply := number.FromUint64(deposited)
		h.SupplyValue = h.SupplyValue.Add(supply)
		h.CollateralValue = h.CollateralValue.Add(supply.Mul(pool.CollateralFactor))
		h.DebtValue = h.DebtValue.Add(number.FromUint64(borrowed))
	}

	h.CollateralValue = h.CollateralValue.Truncate(compound.MaxPrecision)

	if h.DebtValue.IsZero() {
		h.Infinite = true
		return h, nil
	}

	h.Factor = h.CollateralValue.Mul(s.threshold).Div(h.DebtValue).Truncate(compound.MaxPrecision)
	return h, nil
}

// BorrowAllowed debt + amount must stay within the collateral value
func (s *riskService) BorrowAllowed(h *core.Health, amount uint64) error {
	if h.DebtValue.Add(number.FromUint64(amount)).GreaterThan(h.CollateralValue) {
		return core.ErrOverBorrowableAmount
	}

	return nil
}

// WithdrawAllowed remaining collateral after taking amount out of pool must cover the debt
func (s *riskService) WithdrawAllowed(h *core.Health, pool *core.Pool, amount uint64) error {
	if h.DebtValue.IsZero() {
		return nil
	}

	left := h.CollateralValue.Sub(number.FromUint64(amount).Mul(pool.CollateralFactor))
	if h.DebtValue.GreaterThan(left) {
		return core.ErrInsufficientFunds
	}

	return nil
}

func (s *riskService) LiquidationAllowed(h *core.Health) error {
	if !h.Liquidatable() {
		return core.ErrNotUnderCollateralized
	}

	return nil
}

// Seize caps repay by the close factor and the debt, then prices the
// collateral at the liquidation discount. Collateral is limited to what the
// target holds, scaling the repay down with it.
func (s *riskService) Seize(debt, repay, available uint64) (uint64, uint64, error) {
	if debt == 0 || repay == 0 {
		return 0, 0, core.ErrInvalidAmount
	}

	if available == 0 {
		return 0, 0, core.ErrInsufficientFunds
	}

	maxRepay, _ := number.ToUint64(number.FromUint64(debt).Mul(s.close))
	if maxRepay == 0 {
		maxRepay = debt
	}

	if repay > maxRepay {
		repay = maxRepay
	}

	keep := decimal.NewFromInt(1).Sub(s.discount)
	seized, ok := number.ToUint64(number.FromUint64(repay).Div(keep))
	if !ok {
		return 0, 0, fmt.Errorf("seize for %d at discount %s: %w", repay, s.discount, core.ErrArithmeticFault)
	}

	if seized > available {
		seized = available
		repay, _ = number.ToUint64(number.FromUint64(available).Mul(keep))
	}

	if repay == 0 || seized == 0 {
		return 0, 0, core.ErrInvalidAmount
	}

	return repay, seized, nil
}
