package custody

import (
	"context"
	"testing"

	"lendingpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook(t *testing.T) {
	ctx := context.Background()
	b := NewBook()
	b.Fund("alice", "btc", 100)

	in := &core.Transfer{TraceID: "1", OpponentID: "alice", Direction: core.TransferDirectionIn, AssetID: "btc", Amount: 60}
	require.Nil(t, b.Transfer(ctx, in))
	// replay is a no-op
	require.Nil(t, b.Transfer(ctx, in))

	assert.Equal(t, uint64(40), b.Balance("alice", "btc"))
	assert.Equal(t, uint64(60), b.Balance(core.PoolAccount("btc"), "btc"))

	out := &core.Transfer{TraceID: "2", OpponentID: "bob", Direction: core.TransferDirectionOut, AssetID: "btc", Amount: 61}
	assert.Equal(t, ErrInsufficientBalance, b.Transfer(ctx, out))

	out.Amount = 60
	require.Nil(t, b.Transfer(ctx, out))
	assert.Equal(t, uint64(60), b.Balance("bob", "btc"))
	assert.Equal(t, uint64(0), b.Balance(core.PoolAccount("btc"), "btc"))
}

func TestFaucetBook(t *testing.T) {
	ctx := context.Background()
	b := NewFaucetBook()

	require.Nil(t, b.Transfer(ctx, &core.Transfer{TraceID: "1", OpponentID: "alice", Direction: core.TransferDirectionIn, AssetID: "btc", Amount: 10}))
	assert.Equal(t, uint64(10), b.Balance(core.PoolAccount("btc"), "btc"))

	// pools never overdraw
	err := b.Transfer(ctx, &core.Transfer{TraceID: "2", OpponentID: "alice", Direction: core.TransferDirectionOut, AssetID: "btc", Amount: 11})
	assert.Equal(t, ErrInsufficientBalance, err)
}
