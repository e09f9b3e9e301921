package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Transaction operation log entry, written in the same commit as the mutation
type Transaction struct {
	ID        uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string         `sql:"size:36;unique_index:transaction_trace_idx" json:"trace_id"`
	Action    Action         `json:"action"`
	UserID    string         `sql:"size:36" json:"user_id"`
	AssetID   string         `sql:"size:36" json:"asset_id"`
	Amount    uint64         `json:"amount"`
	Shares    uint64         `json:"shares"`
	Data      types.JSONText `sql:"type:TEXT" json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewTransaction builds a log entry, extra is marshalled into Data
func NewTransaction(traceID string, action Action, userID, assetID string, amount, shares uint64, extra interface{}) *Transaction {
	tx := &Transaction{
		TraceID: traceID,
		Action:  action,
		UserID:  userID,
		AssetID: assetID,
		Amount:  amount,
		Shares:  shares,
	}

	if extra != nil {
		if bts, e := json.Marshal(extra); e == nil {
			tx.Data = bts
		}
	}

	return tx
}

// TransactionStore operation log
type TransactionStore interface {
	// FindByTraceID returns an empty transaction (ID == 0) when not found
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
