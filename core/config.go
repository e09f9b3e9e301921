package core

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// CustodyMixin transfers through the mixin network
	CustodyMixin = "mixin"
	// CustodyBook in-process custody book
	CustodyBook = "book"
)

type (
	// Config config
	Config struct {
		App     App           `json:"app"`
		DB      db.Config     `json:"db"`
		Mixin   Mixin         `json:"mixin"`
		Risk    RiskConfig    `json:"risk"`
		Assets  []AssetConfig `json:"assets"`
		Cashier Cashier       `json:"cashier"`
	}

	// App app config
	App struct {
		Location     string `json:"location"`
		// mixin | book
		Custody      string `json:"custody"`
		// cron spec of the accrual worker
		AccrualSpec  string `json:"accrual_spec"`
		// cron spec of the health scan worker
		HealthSpec   string `json:"health_spec"`
		// optional webhook notified of liquidatable positions
		AlertWebhook string `json:"alert_webhook"`
	}

	// Mixin custody wallet
	Mixin struct {
		mixin.Keystore
		Pin string `json:"pin"`
	}

	// RiskConfig liquidation parameters
	RiskConfig struct {
		// health factor numerator weight, >= 1
		LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
		// collateral price cut for liquidators (0, 1)
		LiquidationDiscount decimal.Decimal `json:"liquidation_discount"`
		// max fraction of a debt repaid per liquidation [0.05, 1]
		CloseFactor decimal.Decimal `json:"close_factor"`
	}

	// AssetConfig pool parameters for one asset
	AssetConfig struct {
		AssetID          string          `json:"asset_id"`
		Symbol           string          `json:"symbol"`
		Decimals         int32           `json:"decimals"`
		InterestRate     decimal.Decimal `json:"interest_rate"`
		CollateralFactor decimal.Decimal `json:"collateral_factor"`
	}

	// Cashier outbox delivery
	Cashier struct {
		Batch    int `json:"batch"`
		Capacity int `json:"capacity"`
	}
)

var (
	// CollateralFactorMax upper bound of a collateral factor
	CollateralFactorMax = decimal.NewFromFloat(0.9)
	// CloseFactorMin lower bound of the close factor
	CloseFactorMin = decimal.NewFromFloat(0.05)
	// MaxAssets number of pools the ledger supports
	MaxAssets = 2
)

// Asset looks up an asset config
func (c *Config) Asset(assetID string) (AssetConfig, bool) {
	for _, a := range c.Assets {
		if a.AssetID == assetID {
			return a, true
		}
	}

	return AssetConfig{}, false
}
