package ledger

import (
	"context"
	"sort"

	"lendingpool/core"
	"lendingpool/pkg/compound"
)

type liquidation struct {
	TargetID          string `json:"target_id"`
	CollateralAssetID string `json:"collateral_asset_id"`
	Seized            uint64 `json:"seized"`
	SeizedShares      uint64 `json:"seized_shares"`
	HealthFactor      string `json:"health_factor"`
}

// Liquidate repays part of an undercollateralized target's debt and hands
// the liquidator the target's collateral at a discount
func (s *ledgerService) Liquidate(ctx context.Context, req *core.LiquidateRequest) (*core.Transaction, error) {
	if req.TargetID == "" || req.TargetID == req.UserID {
		return nil, core.ErrOperationForbidden
	}

	assets, e := s.withAsset(ctx, req.AssetID)
	if e != nil {
		return nil, e
	}

	return s.execute(ctx, core.ActionLiquidate, &req.Request, assets, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		h, e := op.health(ctx, req.TargetID)
		if e != nil {
			return nil, e
		}

		if e := s.risk.LiquidationAllowed(h); e != nil {
			return nil, e
		}

		debtPool, e := op.pool(req.AssetID)
		if e != nil {
			return nil, e
		}

		borrow, e := op.position(ctx, req.TargetID, req.AssetID)
		if e != nil {
			return nil, e
		}

		debt, e := compound.BorrowedValue(borrow, debtPool)
		if e != nil {
			return nil, e
		}

		if debt == 0 {
			return nil, core.ErrPositionNotFound
		}

		collateralAsset := req.CollateralAssetID
		if collateralAsset == "" {
			if collateralAsset, e = op.largestDeposit(ctx, req.TargetID); e != nil {
				return nil, e
			}
		}

		collateralPool, e := op.pool(collateralAsset)
		if e != nil {
			return nil, e
		}

		supply, e := op.position(ctx, req.TargetID, collateralAsset)
		if e != nil {
			return nil, e
		}

		available, e := compound.DepositedValue(supply, collateralPool)
		if e != nil {
			return nil, e
		}

		repaid, seized, e := s.risk.Seize(debt, req.Amount, available)
		if e != nil {
			return nil, e
		}

		repaidShares, e := repay(debtPool, borrow, repaid)
		if e != nil {
			return nil, e
		}

		seizedShares, e := compound.SharesToWithdraw(collateralPool, seized)
		if e != nil {
			return nil, e
		}

		if seizedShares >= supply.DepositShares {
			seizedShares, seized = supply.DepositShares, available
		}

		if e := compound.RemoveDeposit(collateralPool, seized, seizedShares); e != nil {
			return nil, e
		}

		if e := compound.SubDepositShares(supply, seizedShares); e != nil {
			return nil, e
		}

		op.transfer(core.TransferDirectionIn, req.UserID, req.AssetID, repaid)
		op.transfer(core.TransferDirectionOut, req.UserID, collateralAsset, seized)

		return core.NewTransaction(req.TraceID, op.action, req.UserID, req.AssetID, repaid, repaidShares, liquidation{
			TargetID:          req.TargetID,
			CollateralAssetID: collateralAsset,
			Seized:            seized,
			SeizedShares:      seizedShares,
			HealthFactor:      h.Factor.String(),
		}), nil
	})
}

// largestDeposit asset where userID has the most deposited value
func (op *operation) largestDeposit(ctx context.Context, userID string) (string, error) {
	positions, e := op.s.positions.FindByUser(ctx, userID)
	if e != nil {
		return "", e
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].AssetID < positions[j].AssetID })

	var (
		best  string
		value uint64
	)

	for _, pos := range positions {
		pool, ok := op.pools[pos.AssetID]
		if !ok {
			continue
		}

		v, e := compound.DepositedValue(pos, pool)
		if e != nil {
			return "", e
		}

		if v > value {
			best, value = pos.AssetID, v
		}
	}

	if best == "" {
		return "", core.ErrInsufficientFunds
	}

	return best, nil
}
