package core

import (
	"context"
	"time"
)

// Position one participant's shares in one pool
type Position struct {
	ID             uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID         string    `sql:"size:36;unique_index:position_user_asset_idx" json:"user_id"`
	AssetID        string    `sql:"size:36;unique_index:position_user_asset_idx" json:"asset_id"`
	DepositShares  uint64    `json:"deposit_shares"`
	BorrowShares   uint64    `json:"borrow_shares"`
	LastUpdateTime time.Time `json:"last_update_time"`
	Version        int64     `sql:"default:0" json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a copy safe to mutate
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// PositionStore position persistence
type PositionStore interface {
	// Find returns an empty position (ID == 0) when the user never touched the pool
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	ListByAsset(ctx context.Context, assetID string) ([]*Position, error)
	// Borrowers users holding any borrow shares
	Borrowers(ctx context.Context) ([]string, error)
}
