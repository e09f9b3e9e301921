package config

import (
	"fmt"

	"lendingpool/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/shopspring/decimal"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultApp(config)
	defaultRisk(config)
	defaultCashier(config)

	return Validate(config)
}

func defaultApp(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.App.Custody == "" {
		cfg.App.Custody = core.CustodyBook
		if cfg.Mixin.ClientID != "" {
			cfg.App.Custody = core.CustodyMixin
		}
	}

	if cfg.App.AccrualSpec == "" {
		cfg.App.AccrualSpec = "@every 1m"
	}

	if cfg.App.HealthSpec == "" {
		cfg.App.HealthSpec = "@every 30s"
	}
}

func defaultRisk(cfg *core.Config) {
	if cfg.Risk.LiquidationThreshold.IsZero() {
		cfg.Risk.LiquidationThreshold = decimal.NewFromInt(1)
	}

	if cfg.Risk.LiquidationDiscount.IsZero() {
		cfg.Risk.LiquidationDiscount = decimal.NewFromFloat(0.05)
	}

	if cfg.Risk.CloseFactor.IsZero() {
		cfg.Risk.CloseFactor = decimal.NewFromFloat(0.5)
	}
}

func defaultCashier(cfg *core.Config) {
	if cfg.Cashier.Batch <= 0 {
		cfg.Cashier.Batch = 100
	}

	if cfg.Cashier.Capacity <= 0 {
		cfg.Cashier.Capacity = 1
	}
}

// Validate checks bounds of the risk and asset parameters
func Validate(cfg *core.Config) error {
	switch cfg.App.Custody {
	case core.CustodyMixin, core.CustodyBook:
	default:
		return fmt.Errorf("unknown custody %q", cfg.App.Custody)
	}

	one := decimal.NewFromInt(1)

	risk := cfg.Risk
	if risk.LiquidationThreshold.LessThan(one) {
		return fmt.Errorf("liquidation threshold %s below 1", risk.LiquidationThreshold)
	}

	if !risk.LiquidationDiscount.IsPositive() || !risk.LiquidationDiscount.LessThan(one) {
		return fmt.Errorf("liquidation discount %s out of (0, 1)", risk.LiquidationDiscount)
	}

	if risk.CloseFactor.LessThan(core.CloseFactorMin) || risk.CloseFactor.GreaterThan(one) {
		return fmt.Errorf("close factor %s out of [%s, 1]", risk.CloseFactor, core.CloseFactorMin)
	}

	if len(cfg.Assets) > core.MaxAssets {
		return fmt.Errorf("at most %d assets, got %d", core.MaxAssets, len(cfg.Assets))
	}

	seen := make(map[string]bool, len(cfg.Assets))
	for _, a := range cfg.Assets {
		if a.AssetID == "" {
			return fmt.Errorf("asset %q without asset_id", a.Symbol)
		}

		if seen[a.AssetID] {
			return fmt.Errorf("duplicated asset %s", a.AssetID)
		}
		seen[a.AssetID] = true

		if a.CollateralFactor.IsNegative() || a.CollateralFactor.GreaterThan(core.CollateralFactorMax) {
			return fmt.Errorf("collateral factor of %s out of [0, %s]", a.AssetID, core.CollateralFactorMax)
		}

		if a.InterestRate.IsNegative() {
			return fmt.Errorf("negative interest rate of %s", a.AssetID)
		}
	}

	return nil
}
