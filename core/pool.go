package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pool shared liquidity of one asset
type Pool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:pool_asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20" json:"symbol"`
	// asset precision used by custody adapters
	Decimals int32 `json:"decimals"`
	// 存款总额及份额
	TotalDeposits      uint64 `json:"total_deposits"`
	TotalDepositShares uint64 `json:"total_deposit_shares"`
	// 借款总额及份额
	TotalBorrows      uint64 `json:"total_borrows"`
	TotalBorrowShares uint64 `json:"total_borrow_shares"`
	// continuous compounding rate per second
	InterestRate decimal.Decimal `sql:"type:decimal(32,24)" json:"interest_rate"`
	// 抵押因子 [0, 0.9]
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	LastAccrualTime  time.Time       `json:"last_accrual_time"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Reserve liquidity not lent out
func (p *Pool) Reserve() uint64 {
	if p.TotalBorrows > p.TotalDeposits {
		return 0
	}

	return p.TotalDeposits - p.TotalBorrows
}

// Validate checks the structural invariants of the pool totals
func (p *Pool) Validate() error {
	if p.TotalDeposits < p.TotalBorrows {
		return fmt.Errorf("pool %s borrows %d exceed deposits %d: %w", p.AssetID, p.TotalBorrows, p.TotalDeposits, ErrArithmeticFault)
	}

	if (p.TotalDepositShares == 0) != (p.TotalDeposits == 0) {
		return fmt.Errorf("pool %s deposit shares %d against deposits %d: %w", p.AssetID, p.TotalDepositShares, p.TotalDeposits, ErrArithmeticFault)
	}

	if (p.TotalBorrowShares == 0) != (p.TotalBorrows == 0) {
		return fmt.Errorf("pool %s borrow shares %d against borrows %d: %w", p.AssetID, p.TotalBorrowShares, p.TotalBorrows, ErrArithmeticFault)
	}

	return nil
}

// Clone returns a copy safe to mutate
func (p *Pool) Clone() *Pool {
	c := *p
	return &c
}

// PoolStore pool persistence
type PoolStore interface {
	Create(ctx context.Context, pool *Pool) error
	Find(ctx context.Context, assetID string) (*Pool, error)
	List(ctx context.Context) ([]*Pool, error)
}
