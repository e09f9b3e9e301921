package ledger

import (
	"context"

	"lendingpool/core"
	"lendingpool/pkg/compound"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

func (s *ledgerService) InitPool(ctx context.Context, asset *core.AssetConfig) (*core.Pool, error) {
	log := logger.FromContext(ctx).WithField("asset", asset.AssetID)

	if asset.AssetID == "" || asset.InterestRate.IsNegative() ||
		asset.CollateralFactor.IsNegative() || asset.CollateralFactor.GreaterThan(core.CollateralFactorMax) {
		return nil, core.ErrInvalidAmount
	}

	pool := &core.Pool{
		AssetID:          asset.AssetID,
		Symbol:           asset.Symbol,
		Decimals:         asset.Decimals,
		InterestRate:     asset.InterestRate,
		CollateralFactor: asset.CollateralFactor,
		LastAccrualTime:  s.clock.Now(),
	}

	if e := s.pools.Create(ctx, pool); e != nil {
		log.WithError(e).Infoln("pools.Create")
		return nil, e
	}

	log.Infoln("pool initialized")
	return pool, nil
}

// SetInterestRate accrues at the old rate up to now, then switches
func (s *ledgerService) SetInterestRate(ctx context.Context, assetID string, rate decimal.Decimal) (*core.Pool, error) {
	if rate.IsNegative() {
		return nil, core.ErrInvalidAmount
	}

	var updated *core.Pool
	req := &core.Request{AssetID: assetID}
	_, e := s.execute(ctx, core.ActionSetRate, req, []string{assetID}, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(assetID)
		if e != nil {
			return nil, e
		}

		old := pool.InterestRate
		pool.InterestRate = rate
		updated = pool

		return core.NewTransaction(req.TraceID, op.action, req.UserID, assetID, 0, 0, map[string]string{
			"old_rate": old.String(),
			"new_rate": rate.String(),
		}), nil
	})

	return updated, e
}

// AccruePool persists accrual of an idle pool
func (s *ledgerService) AccruePool(ctx context.Context, assetID string) (*core.Pool, error) {
	unlock, e := s.locker.Lock(ctx, assetID)
	if e != nil {
		return nil, e
	}
	defer unlock()

	pool, e := s.pools.Find(ctx, assetID)
	if e != nil {
		return nil, e
	}

	last := pool.LastAccrualTime
	if e := compound.AccruePool(pool, s.clock.Now()); e != nil {
		return nil, e
	}

	if pool.LastAccrualTime.Equal(last) {
		return pool, nil
	}

	if e := s.ledger.Commit(ctx, &core.Commit{Pools: []*core.Pool{pool}}); e != nil {
		return nil, e
	}

	return pool, nil
}
