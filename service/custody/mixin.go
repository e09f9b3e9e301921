package custody

import (
	"context"
	"fmt"

	"lendingpool/core"
	"lendingpool/pkg/number"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"
)

// NewMixin custody backed by a mixin wallet holding every pool's liquidity.
// Users pay inbound transfers to the wallet before calling the ledger, using
// the transfer's trace id; the payment snapshot is checked instead of moving
// funds.
func NewMixin(client *mixin.Client, pin string, assets []core.AssetConfig) core.Custody {
	decimals := make(map[string]int32, len(assets))
	for _, a := range assets {
		decimals[a.AssetID] = a.Decimals
	}

	return &mixinCustody{
		client:   client,
		pin:      pin,
		decimals: decimals,
	}
}

type mixinCustody struct {
	client   *mixin.Client
	pin      string
	decimals map[string]int32
}

func (c *mixinCustody) Transfer(ctx context.Context, transfer *core.Transfer) error {
	decimals, ok := c.decimals[transfer.AssetID]
	if !ok {
		return fmt.Errorf("transfer %s: asset %s: %w", transfer.TraceID, transfer.AssetID, core.ErrPoolNotFound)
	}

	amount := number.FromUint64(transfer.Amount).Shift(-decimals)
	if transfer.Direction == core.TransferDirectionIn {
		snapshot, err := c.client.ReadSnapshotByTraceID(ctx, transfer.TraceID)
		if err != nil {
			return fmt.Errorf("read payment %s: %w", transfer.TraceID, err)
		}

		return verifyPayment(snapshot, transfer, amount)
	}

	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     amount,
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	// mixin dedups by trace id, retries are safe
	_, err := c.client.Transfer(ctx, input, c.pin)
	return err
}

// verifyPayment checks that snapshot is the user's payment of exactly amount
func verifyPayment(snapshot *mixin.Snapshot, transfer *core.Transfer, amount decimal.Decimal) error {
	switch {
	case snapshot.TraceID != transfer.TraceID:
		return fmt.Errorf("payment %s: trace %s mismatch", transfer.TraceID, snapshot.TraceID)
	case snapshot.AssetID != transfer.AssetID:
		return fmt.Errorf("payment %s: asset %s, want %s", transfer.TraceID, snapshot.AssetID, transfer.AssetID)
	case snapshot.OpponentID != transfer.OpponentID:
		return fmt.Errorf("payment %s: paid by %s, want %s", transfer.TraceID, snapshot.OpponentID, transfer.OpponentID)
	case !snapshot.Amount.Equal(amount):
		return fmt.Errorf("payment %s: amount %s, want %s", transfer.TraceID, snapshot.Amount, amount)
	}

	return nil
}
