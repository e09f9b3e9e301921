package core

import (
	"context"
	"time"
)

// TransferDirection custody movement direction relative to the pool
type TransferDirection int

const (
	_ TransferDirection = iota
	// TransferDirectionIn user -> pool
	TransferDirectionIn
	// TransferDirectionOut pool -> user
	TransferDirectionOut
)

func (d TransferDirection) String() string {
	switch d {
	case TransferDirectionIn:
		return "in"
	case TransferDirectionOut:
		return "out"
	default:
		return "unknown"
	}
}

// TransferStatus outbox state
type TransferStatus int

const (
	TransferStatusPending TransferStatus = iota
	TransferStatusDone
)

// Transfer custody outbox row
type Transfer struct {
	ID uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	// unique per transfer, reused on every delivery attempt
	TraceID string `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id,omitempty"`
	// trace id of the ledger operation that produced the transfer
	OperationTraceID string            `sql:"size:36" json:"operation_trace_id,omitempty"`
	OpponentID       string            `sql:"size:36" json:"opponent_id,omitempty"`
	Direction        TransferDirection `json:"direction,omitempty"`
	AssetID          string            `sql:"size:36" json:"asset_id,omitempty"`
	Amount           uint64            `json:"amount,omitempty"`
	Memo             string            `sql:"size:140" json:"memo,omitempty"`
	Status           TransferStatus    `sql:"index:transfer_status_idx" json:"status"`
	Attempts         int               `json:"attempts"`
	LastError        string            `sql:"size:255" json:"last_error,omitempty"`
	CreatedAt        time.Time         `json:"created_at,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at,omitempty"`
}

// PoolAccount custody account holding the pool's liquidity for an asset
func PoolAccount(assetID string) string {
	return "pool:" + assetID
}

// From source custody account
func (t *Transfer) From() string {
	if t.Direction == TransferDirectionIn {
		return t.OpponentID
	}

	return PoolAccount(t.AssetID)
}

// To destination custody account
func (t *Transfer) To() string {
	if t.Direction == TransferDirectionIn {
		return PoolAccount(t.AssetID)
	}

	return t.OpponentID
}

// TransferStore custody outbox
type TransferStore interface {
	ListPending(ctx context.Context, limit int) ([]*Transfer, error)
	ListByOperation(ctx context.Context, traceID string) ([]*Transfer, error)
	MarkDone(ctx context.Context, transfer *Transfer) error
	MarkFailed(ctx context.Context, transfer *Transfer, reason string) error
}

// Custody moves asset units between custody accounts.
// Implementations must treat Transfer.TraceID as an idempotency key and
// must fail an inbound transfer the user has not paid.
type Custody interface {
	Transfer(ctx context.Context, transfer *Transfer) error
}

// TransferService moves ledger transfers through custody
type TransferService interface {
	// Settle collects an inbound transfer before its operation commits
	Settle(ctx context.Context, transfer *Transfer) error
	// Deliver pays out a committed outbound transfer
	Deliver(ctx context.Context, transfer *Transfer) error
}
