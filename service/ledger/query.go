package ledger

import (
	"context"

	"lendingpool/core"
	"lendingpool/pkg/compound"
)

// Pool accrued to now without persisting
func (s *ledgerService) Pool(ctx context.Context, assetID string) (*core.Pool, error) {
	pool, e := s.pools.Find(ctx, assetID)
	if e != nil {
		return nil, e
	}

	if e := compound.AccruePool(pool, s.clock.Now()); e != nil {
		return nil, e
	}

	return pool, nil
}

func (s *ledgerService) Position(ctx context.Context, userID, assetID string) (*core.PositionView, error) {
	pool, e := s.Pool(ctx, assetID)
	if e != nil {
		return nil, e
	}

	pos, e := s.positions.Find(ctx, userID, assetID)
	if e != nil {
		return nil, e
	}

	if pos.ID == 0 {
		return nil, core.ErrPositionNotFound
	}

	view := &core.PositionView{Position: pos}
	if view.Deposited, e = compound.DepositedValue(pos, pool); e != nil {
		return nil, e
	}

	if view.Borrowed, e = compound.BorrowedValue(pos, pool); e != nil {
		return nil, e
	}

	return view, nil
}

func (s *ledgerService) Health(ctx context.Context, userID string) (*core.Health, error) {
	pools, e := s.pools.List(ctx)
	if e != nil {
		return nil, e
	}

	now := s.clock.Now()
	byAsset := make(map[string]*core.Pool, len(pools))
	for _, pool := range pools {
		if e := compound.AccruePool(pool, now); e != nil {
			return nil, e
		}

		byAsset[pool.AssetID] = pool
	}

	positions, e := s.positions.FindByUser(ctx, userID)
	if e != nil {
		return nil, e
	}

	return s.risk.Health(userID, positions, byAsset)
}
