package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lendingpool/core"
	"lendingpool/internal/clock"
	"lendingpool/service/custody"
	"lendingpool/service/ledger"
	"lendingpool/service/risk"
	"lendingpool/service/transfer"
	"lendingpool/store/memory"

	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
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
			LiquidationDiscount:  decimal.RequireFromString("0.1"),
			CloseFactor:          decimal.RequireFromString("0.5"),
		}),
		transfer.New(custody.NewFaucetBook(), store),
		clk,
	)

	for _, a := range []*core.AssetConfig{
		{AssetID: "btc", Symbol: "BTC", Decimals: 8, CollateralFactor: decimal.RequireFromString("0.75")},
		{AssetID: "usd", Symbol: "USD", Decimals: 2, CollateralFactor: decimal.RequireFromString("0.5")},
	} {
		_, err := ledgerz.InitPool(ctx, a)
		require.Nil(t, err)
	}

	do := func(f func(context.Context, *core.Request) (*core.Transaction, error), user, asset string, amount uint64) {
		_, err := f(ctx, &core.Request{UserID: user, AssetID: asset, Amount: amount})
		require.Nil(t, err)
	}

	do(ledgerz.Deposit, "alice", "btc", 1000)
	do(ledgerz.Deposit, "bob", "usd", 5000)
	do(ledgerz.Borrow, "alice", "usd", 750)
	do(ledgerz.Deposit, "carol", "btc", 1000)
	do(ledgerz.Borrow, "carol", "usd", 100)

	var alerted []*core.Health
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Liquidatable []*core.Health `json:"liquidatable"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		alerted = body.Liquidatable
	}))
	defer svr.Close()

	w := New("UTC", "@every 1m", store.Positions(), ledgerz, nil, svr.URL)

	list, err := w.scan(ctx)
	require.Nil(t, err)
	assert.Len(t, list, 0)

	_, err = ledgerz.SetInterestRate(ctx, "usd", decimal.RequireFromString("0.0000001"))
	require.Nil(t, err)
	clk.Advance(30 * 24 * time.Hour)

	list, err = w.scan(ctx)
	require.Nil(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "alice", list[0].UserID)
	}

	require.Nil(t, w.alert(ctx, list))
	if assert.Len(t, alerted, 1) {
		assert.Equal(t, "alice", alerted[0].UserID)
	}
}

func TestDue(t *testing.T) {
	now := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, due(time.Time{}, now))
	assert.True(t, due(now.Add(-minScanInterval), now))
	assert.True(t, due(now.Add(-time.Hour), now))
	assert.False(t, due(now.Add(-time.Second), now))
}

func TestOnWorkCheckpoint(t *testing.T) {
	ctx := context.Background()

	database, err := db.Open(db.SqliteInMemory())
	require.Nil(t, err)
	defer database.Close()
	require.Nil(t, db.Migrate(database))
	properties := propertystore.New(database)

	store := memory.New()
	ledgerz := ledger.New(
		store,
		store.Positions(),
		store,
		store,
		risk.New(core.RiskConfig{
			LiquidationThreshold: decimal.NewFromInt(1),
			LiquidationDiscount:  decimal.RequireFromString("0.1"),
			CloseFactor:          decimal.RequireFromString("0.5"),
		}),
		transfer.New(custody.NewFaucetBook(), store),
		clock.NewFixed(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)),
	)

	_, err = ledgerz.InitPool(ctx, &core.AssetConfig{AssetID: "usd", Symbol: "USD", Decimals: 2, CollateralFactor: decimal.RequireFromString("0.5")})
	require.Nil(t, err)

	var alerts int
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alerts++
	}))
	defer svr.Close()

	w := New("UTC", "@every 1m", store.Positions(), ledgerz, properties, svr.URL)

	t.Run("recent checkpoint skips the scan", func(t *testing.T) {
		recent := time.Now().Add(-time.Second).Truncate(time.Second)
		require.Nil(t, properties.Save(ctx, checkpointKey, recent))

		require.Nil(t, w.onWork(ctx))

		v, err := properties.Get(ctx, checkpointKey)
		require.Nil(t, err)
		assert.True(t, v.Time().Equal(recent))
	})

	t.Run("stale checkpoint scans again", func(t *testing.T) {
		stale := time.Now().Add(-time.Hour)
		require.Nil(t, properties.Save(ctx, checkpointKey, stale))

		require.Nil(t, w.onWork(ctx))

		v, err := properties.Get(ctx, checkpointKey)
		require.Nil(t, err)
		assert.True(t, v.Time().After(stale.Add(time.Minute)))
	})

	// nobody borrowed, nothing to alert about
	assert.Equal(t, 0, alerts)
}
