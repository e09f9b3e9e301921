package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Commit the full change set of one ledger operation
type Commit struct {
	Pools       []*Pool
	Positions   []*Position
	Transaction *Transaction
	Transfers   []*Transfer
}

// LedgerStore applies a commit atomically. Pools and positions carry the
// version they were read at; a mismatch aborts with ErrVersionConflict
// and nothing is written.
type LedgerStore interface {
	Commit(ctx context.Context, c *Commit) error
}

// Request a single-asset ledger operation
type Request struct {
	TraceID string `json:"trace_id,omitempty" valid:"uuid,optional"`
	UserID  string `json:"user_id,omitempty" valid:"required"`
	AssetID string `json:"asset_id,omitempty" valid:"required"`
	Amount  uint64 `json:"amount,omitempty"`
}

// LiquidateRequest UserID is the liquidator, AssetID the debt asset and
// Amount the repay offered
type LiquidateRequest struct {
	Request
	TargetID string `json:"target_id,omitempty" valid:"required"`
	// optional, defaults to the target's largest deposit
	CollateralAssetID string `json:"collateral_asset_id,omitempty"`
}

// LedgerService ledger operations
type LedgerService interface {
	InitPool(ctx context.Context, asset *AssetConfig) (*Pool, error)
	SetInterestRate(ctx context.Context, assetID string, rate decimal.Decimal) (*Pool, error)
	AccruePool(ctx context.Context, assetID string) (*Pool, error)

	Deposit(ctx context.Context, req *Request) (*Transaction, error)
	Withdraw(ctx context.Context, req *Request) (*Transaction, error)
	// Redeem withdraws by deposit shares instead of amount
	Redeem(ctx context.Context, req *Request) (*Transaction, error)
	Borrow(ctx context.Context, req *Request) (*Transaction, error)
	Repay(ctx context.Context, req *Request) (*Transaction, error)
	Liquidate(ctx context.Context, req *LiquidateRequest) (*Transaction, error)

	Pool(ctx context.Context, assetID string) (*Pool, error)
	Position(ctx context.Context, userID, assetID string) (*PositionView, error)
	Health(ctx context.Context, userID string) (*Health, error)
}

// PositionView position with derived amounts at read time
type PositionView struct {
	*Position
	Deposited uint64 `json:"deposited"`
	Borrowed  uint64 `json:"borrowed"`
}
