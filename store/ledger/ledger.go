package ledger

import (
	"context"

	"lendingpool/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type ledgerStore struct {
	db *db.DB
}

// New ledger store writing pools, positions, transactions and transfers of
// one commit in a single database transaction
func New(db *db.DB) core.LedgerStore {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) Commit(ctx context.Context, c *core.Commit) error {
	log := logger.FromContext(ctx)

	for _, pool := range c.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
	}

	created := make(map[*core.Position]uint64)
	err := s.db.Tx(func(tx *db.DB) error {
		for _, pool := range c.Pools {
			if err := updatePool(tx, pool); err != nil {
				return err
			}
		}

		for _, pos := range c.Positions {
			if pos.ID > 0 {
				if err := updatePosition(tx, pos); err != nil {
					return err
				}

				continue
			}

			row := *pos
			row.Version = 1
			if err := tx.Update().Create(&row).Error; err != nil {
				return err
			}

			created[pos] = row.ID
		}

		if c.Transaction != nil {
			if err := tx.Update().Create(c.Transaction).Error; err != nil {
				return err
			}
		}

		for _, t := range c.Transfers {
			if err := tx.Update().Create(t).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.WithError(err).Debugln("ledger commit rolled back")
		return err
	}

	for _, pool := range c.Pools {
		pool.Version++
	}

	for _, pos := range c.Positions {
		if id, ok := created[pos]; ok {
			pos.ID = id
		}

		pos.Version++
	}

	return nil
}

func updatePool(tx *db.DB, pool *core.Pool) error {
	updates := map[string]interface{}{
		"total_deposits":       pool.TotalDeposits,
		"total_deposit_shares": pool.TotalDepositShares,
		"total_borrows":        pool.TotalBorrows,
		"total_borrow_shares":  pool.TotalBorrowShares,
		"interest_rate":        pool.InterestRate,
		"collateral_factor":    pool.CollateralFactor,
		"last_accrual_time":    pool.LastAccrualTime,
		"version":              pool.Version + 1,
	}

	r := tx.Update().Model(core.Pool{}).Where("asset_id=? AND version=?", pool.AssetID, pool.Version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}

func updatePosition(tx *db.DB, pos *core.Position) error {
	updates := map[string]interface{}{
		"deposit_shares":   pos.DepositShares,
		"borrow_shares":    pos.BorrowShares,
		"last_update_time": pos.LastUpdateTime,
		"version":          pos.Version + 1,
	}

	r := tx.Update().Model(core.Position{}).Where("id=? AND version=?", pos.ID, pos.Version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
