package risk

import (
	"testing"

	"lendingpool/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRisk() core.RiskService {
	return New(core.RiskConfig{
		LiquidationThreshold: decimal.NewFromInt(1),
		LiquidationDiscount:  decimal.RequireFromString("0.1"),
		CloseFactor:          decimal.RequireFromString("0.5"),
	})
}

func testPools() map[string]*core.Pool {
	return map[string]*core.Pool{
		"btc": {
			AssetID:            "btc",
			TotalDeposits:      2000,
			TotalDepositShares: 1000,
			CollateralFactor:   decimal.RequireFromString("0.75"),
		},
		"usd": {
			AssetID:            "usd",
			TotalDeposits:      5000,
			TotalDepositShares: 5000,
			TotalBorrows:       1100,
			TotalBorrowShares:  1000,
			CollateralFactor:   decimal.RequireFromString("0.5"),
		},
	}
}

func TestHealth(t *testing.T) {
	s := newRisk()
	pools := testPools()

	t.Run("no debt is infinitely healthy", func(t *testing.T) {
		h, err := s.Health("u", []*core.Position{{AssetID: "btc", DepositShares: 100}}, pools)
		require.Nil(t, err)
		assert.True(t, h.Infinite)
		assert.False(t, h.Liquidatable())
		assert.Equal(t, "200", h.SupplyValue.String())
		assert.Equal(t, "150", h.CollateralValue.String())
	})

	t.Run("collateral over debt", func(t *testing.T) {
		h, err := s.Health("u", []*core.Position{
			{AssetID: "btc", DepositShares: 100},
			{AssetID: "usd", DepositShares: 100, BorrowShares: 100},
		}, pools)
		require.Nil(t, err)
		assert.False(t, h.Infinite)
		// 200*0.75 + 100*0.5
		assert.Equal(t, "200", h.CollateralValue.String())
		assert.Equal(t, "110", h.DebtValue.String())
		assert.Equal(t, "1.8181818181818182", h.Factor.String())
		assert.Equal(t, "90", h.Borrowable().String())
	})

	t.Run("unknown pool", func(t *testing.T) {
		_, err := s.Health("u", []*core.Position{{AssetID: "eth", DepositShares: 1}}, pools)
		assert.ErrorIs(t, err, core.ErrPoolNotFound)
	})
}

func TestBorrowAllowed(t *testing.T) {
	s := newRisk()
	h := &core.Health{CollateralValue: decimal.NewFromInt(750), DebtValue: decimal.NewFromInt(700)}

	assert.Nil(t, s.BorrowAllowed(h, 50))
	assert.Equal(t, core.ErrOverBorrowableAmount, s.BorrowAllowed(h, 51))
}

func TestWithdrawAllowed(t *testing.T) {
	s := newRisk()
	pool := &core.Pool{CollateralFactor: decimal.RequireFromString("0.75")}

	h := &core.Health{CollateralValue: decimal.NewFromInt(750), DebtValue: decimal.NewFromInt(600)}
	assert.Nil(t, s.WithdrawAllowed(h, pool, 200))
	assert.Equal(t, core.ErrInsufficientFunds, s.WithdrawAllowed(h, pool, 201))

	free := &core.Health{CollateralValue: decimal.NewFromInt(750), DebtValue: decimal.Zero, Infinite: true}
	assert.Nil(t, s.WithdrawAllowed(free, pool, 1000))
}

func TestLiquidationAllowed(t *testing.T) {
	s := newRisk()

	assert.Equal(t, core.ErrNotUnderCollateralized, s.LiquidationAllowed(&core.Health{Infinite: true}))
	assert.Equal(t, core.ErrNotUnderCollateralized, s.LiquidationAllowed(&core.Health{Factor: decimal.NewFromInt(1)}))
	assert.Nil(t, s.LiquidationAllowed(&core.Health{Factor: decimal.RequireFromString("0.9999")}))
}

func TestSeize(t *testing.T) {
	s := newRisk()

	t.Run("close factor caps repay", func(t *testing.T) {
		repaid, seized, err := s.Seize(100, 80, 1000)
		require.Nil(t, err)
		assert.Equal(t, uint64(50), repaid)
		assert.Equal(t, uint64(55), seized)
	})

	t.Run("discounted collateral", func(t *testing.T) {
		repaid, seized, err := s.Seize(100, 45, 1000)
		require.Nil(t, err)
		assert.Equal(t, uint64(45), repaid)
		assert.Equal(t, uint64(50), seized)
	})

	t.Run("collateral caps seize", func(t *testing.T) {
		repaid, seized, err := s.Seize(100, 50, 20)
		require.Nil(t, err)
		assert.Equal(t, uint64(18), repaid)
		assert.Equal(t, uint64(20), seized)
	})

	t.Run("dust debt is fully closable", func(t *testing.T) {
		repaid, seized, err := s.Seize(1, 1, 10)
		require.Nil(t, err)
		assert.Equal(t, uint64(1), repaid)
		assert.Equal(t, uint64(1), seized)
	})

	t.Run("nothing to seize", func(t *testing.T) {
		_, _, err := s.Seize(100, 50, 0)
		assert.Equal(t, core.ErrInsufficientFunds, err)
	})
}
