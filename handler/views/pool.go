package views

import (
	"time"

	"lendingpool/core"
	"lendingpool/pkg/number"

	"github.com/shopspring/decimal"
)

// Pool pool totals with derived prices
type Pool struct {
	AssetID            string          `json:"asset_id"`
	Symbol             string          `json:"symbol"`
	TotalDeposits      uint64          `json:"total_deposits"`
	TotalDepositShares uint64          `json:"total_deposit_shares"`
	TotalBorrows       uint64          `json:"total_borrows"`
	TotalBorrowShares  uint64          `json:"total_borrow_shares"`
	Reserve            uint64          `json:"reserve"`
	DepositPrice       decimal.Decimal `json:"deposit_price"`
	BorrowPrice        decimal.Decimal `json:"borrow_price"`
	Utilization        decimal.Decimal `json:"utilization"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	CollateralFactor   decimal.Decimal `json:"collateral_factor"`
	LastAccrualTime    time.Time       `json:"last_accrual_time"`
}

// PoolView render pool
func PoolView(p *core.Pool) Pool {
	return Pool{
		AssetID:            p.AssetID,
		Symbol:             p.Symbol,
		TotalDeposits:      p.TotalDeposits,
		TotalDepositShares: p.TotalDepositShares,
		TotalBorrows:       p.TotalBorrows,
		TotalBorrowShares:  p.TotalBorrowShares,
		Reserve:            p.Reserve(),
		DepositPrice:       price(p.TotalDeposits, p.TotalDepositShares),
		BorrowPrice:        price(p.TotalBorrows, p.TotalBorrowShares),
		Utilization:        ratio(p.TotalBorrows, p.TotalDeposits),
		InterestRate:       p.InterestRate,
		CollateralFactor:   p.CollateralFactor,
		LastAccrualTime:    p.LastAccrualTime,
	}
}

// 无份额时价格为 1
func price(total, shares uint64) decimal.Decimal {
	if shares == 0 {
		return decimal.NewFromInt(1)
	}

	return ratio(total, shares)
}

func ratio(a, b uint64) decimal.Decimal {
	if b == 0 {
		return decimal.Zero
	}

	return number.FromUint64(a).DivRound(number.FromUint64(b), 16)
}
