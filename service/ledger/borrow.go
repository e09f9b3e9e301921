package ledger

import (
	"context"

	"lendingpool/core"
	"lendingpool/pkg/compound"
)

// Borrow lends out of the pool when collateral covers debt plus amount
func (s *ledgerService) Borrow(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	assets, e := s.withAsset(ctx, req.AssetID)
	if e != nil {
		return nil, e
	}

	return s.execute(ctx, core.ActionBorrow, req, assets, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		pos, e := op.position(ctx, req.UserID, req.AssetID)
		if e != nil {
			return nil, e
		}

		h, e := op.health(ctx, req.UserID)
		if e != nil {
			return nil, e
		}

		if e := s.risk.BorrowAllowed(h, req.Amount); e != nil {
			return nil, e
		}

		shares, e := compound.BorrowSharesFor(pool, req.Amount)
		if e != nil {
			return nil, e
		}

		if e := compound.AddBorrowShares(pos, shares); e != nil {
			return nil, e
		}

		op.transfer(core.TransferDirectionOut, req.UserID, req.AssetID, req.Amount)
		return core.NewTransaction(req.TraceID, op.action, req.UserID, req.AssetID, req.Amount, shares, nil), nil
	})
}

// Repay pays back part or all of the user's debt
func (s *ledgerService) Repay(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.execute(ctx, core.ActionRepay, req, []string{req.AssetID}, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		pos, e := op.position(ctx, req.UserID, req.AssetID)
		if e != nil {
			return nil, e
		}

		shares, e := repay(pool, pos, req.Amount)
		if e != nil {
			return nil, e
		}

		op.transfer(core.TransferDirectionIn, req.UserID, req.AssetID, req.Amount)
		return core.NewTransaction(req.TraceID, op.action, req.UserID, req.AssetID, req.Amount, shares, nil), nil
	})
}

// repay burns the borrow shares amount pays for. Paying the whole debt
// burns every share of the position.
func repay(pool *core.Pool, pos *core.Position, amount uint64) (uint64, error) {
	debt, e := compound.BorrowedValue(pos, pool)
	if e != nil {
		return 0, e
	}

	if debt == 0 || amount > debt {
		return 0, core.ErrOverRepay
	}

	shares := pos.BorrowShares
	if amount < debt {
		if shares, e = compound.SharesToRepay(pool, amount); e != nil {
			return 0, e
		}

		if shares == 0 {
			return 0, core.ErrInvalidAmount
		}
	}

	if e := compound.RemoveBorrow(pool, amount, shares); e != nil {
		return 0, e
	}

	if e := compound.SubBorrowShares(pos, shares); e != nil {
		return 0, e
	}

	return shares, nil
}
