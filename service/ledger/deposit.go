package ledger

import (
	"context"

	"lendingpool/core"
	"lendingpool/pkg/compound"
)

// Deposit mints deposit shares for the user against an inbound transfer
func (s *ledgerService) Deposit(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.execute(ctx, core.ActionDeposit, req, []string{req.AssetID}, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		pos, e := op.position(ctx, req.UserID, req.AssetID)
		if e != nil {
			return nil, e
		}

		shares, e := compound.DepositSharesFor(pool, req.Amount)
		if e != nil {
			return nil, e
		}

		if e := compound.AddDepositShares(pos, shares); e != nil {
			return nil, e
		}

		op.transfer(core.TransferDirectionIn, req.UserID, req.AssetID, req.Amount)
		return core.NewTransaction(req.TraceID, op.action, req.UserID, req.AssetID, req.Amount, shares, nil), nil
	})
}

// Withdraw pays out exactly req.Amount of underlying. When the rounded up
// burn reaches every share of the position, all of them are burnt and the
// value left over stays with the pool's other depositors. If nobody else
// holds shares the request fails with ErrInvalidAmount; withdraw the whole
// value or redeem instead.
func (s *ledgerService) Withdraw(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	assets, e := s.withAsset(ctx, req.AssetID)
	if e != nil {
		return nil, e
	}

	return s.execute(ctx, core.ActionWithdraw, req, assets, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		pos, e := op.position(ctx, req.UserID, req.AssetID)
		if e != nil {
			return nil, e
		}

		value, e := compound.DepositedValue(pos, pool)
		if e != nil {
			return nil, e
		}

		if req.Amount > value {
			return nil, core.ErrInsufficientFunds
		}

		amount := req.Amount
		shares, e := compound.SharesToWithdraw(pool, amount)
		if e != nil {
			return nil, e
		}

		if shares >= pos.DepositShares {
			shares = pos.DepositShares
			if amount < value && shares == pool.TotalDepositShares {
				return nil, core.ErrInvalidAmount
			}
		}

		return s.withdraw(ctx, op, pool, pos, amount, shares)
	})
}

// Redeem burns an exact number of deposit shares, req.Amount counts shares
func (s *ledgerService) Redeem(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	assets, e := s.withAsset(ctx, req.AssetID)
	if e != nil {
		return nil, e
	}

	return s.execute(ctx, core.ActionWithdraw, req, assets, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		pool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		pos, e := op.position(ctx, req.UserID, req.AssetID)
		if e != nil {
			return nil, e
		}

		if req.Amount > pos.DepositShares {
			return nil, core.ErrInsufficientFunds
		}

		amount, e := compound.DepositAmount(pool, req.Amount)
		if e != nil {
			return nil, e
		}

		if amount == 0 {
			return nil, core.ErrInvalidAmount
		}

		return s.withdraw(ctx, op, pool, pos, amount, req.Amount)
	})
}

func (s *ledgerService) withdraw(ctx context.Context, op *operation, pool *core.Pool, pos *core.Position, amount, shares uint64) (*core.Transaction, error) {
	h, e := op.health(ctx, pos.UserID)
	if e != nil {
		return nil, e
	}

	if e := s.risk.WithdrawAllowed(h, pool, amount); e != nil {
		return nil, e
	}

	if e := compound.RemoveDeposit(pool, amount, shares); e != nil {
		return nil, e
	}

	if e := compound.SubDepositShares(pos, shares); e != nil {
		return nil, e
	}

	op.transfer(core.TransferDirectionOut, pos.UserID, pool.AssetID, amount)
	return core.NewTransaction(op.traceID, op.action, pos.UserID, pool.AssetID, amount, shares, nil), nil
}
