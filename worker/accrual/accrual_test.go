package accrual

import (
	"context"
	"testing"
	"time"

	"lendingpool/core"
	"lendingpool/internal/clock"
	"lendingpool/service/custody"
	"lendingpool/service/ledger"
	"lendingpool/service/risk"
	"lendingpool/service/transfer"
	"lendingpool/store/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrueIdlePools(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	clk := clock.NewFixed(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC))
	ledgerz := ledger.New(
		store,
		store.Positions(),
		store,
		store,
		risk.New(core.RiskConfig{
			LiquidationThreshold: decimal.NewFromInt(1),
			LiquidationDiscount:  decimal.RequireFromString("0.05"),
			CloseFactor:          decimal.RequireFromString("0.5"),
		}),
		transfer.New(custody.NewFaucetBook(), store),
		clk,
	)

	_, err := ledgerz.InitPool(ctx, &core.AssetConfig{
		AssetID:          "btc",
		Symbol:           "BTC",
		Decimals:         8,
		InterestRate:     decimal.RequireFromString("0.000001"),
		CollateralFactor: decimal.RequireFromString("0.75"),
	})
	require.Nil(t, err)

	_, err = ledgerz.Deposit(ctx, &core.Request{UserID: "alice", AssetID: "btc", Amount: 1000000})
	require.Nil(t, err)
	_, err = ledgerz.Borrow(ctx, &core.Request{UserID: "alice", AssetID: "btc", Amount: 500000})
	require.Nil(t, err)

	w := New("UTC", "@every 1s", store, ledgerz)

	clk.Advance(time.Second)
	require.Nil(t, w.onWork(ctx))

	pool, err := store.Find(ctx, "btc")
	require.Nil(t, err)
	// floor(500000 * e^0.000001) and floor(1000000 * e^0.000001)
	assert.Equal(t, uint64(500000), pool.TotalBorrows)
	assert.Equal(t, uint64(1000001), pool.TotalDeposits)

	clk.Advance(time.Hour)
	require.Nil(t, w.onWork(ctx))

	pool, err = store.Find(ctx, "btc")
	require.Nil(t, err)
	assert.Equal(t, uint64(501803), pool.TotalBorrows)
	assert.Equal(t, uint64(1003607), pool.TotalDeposits)
	assert.Equal(t, clk.Now().Unix(), pool.LastAccrualTime.Unix())
	assert.Nil(t, pool.Validate())
}
