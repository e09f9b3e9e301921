package accrual

import (
	"context"

	"lendingpool/core"
	"lendingpool/internal/metrics"
	"lendingpool/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker accrues interest of idle pools on a schedule
type Worker struct {
	worker.BaseJob
	pools   core.PoolStore
	ledgerz core.LedgerService
}

// New new accrual worker
func New(location, spec string, pools core.PoolStore, ledgerz core.LedgerService) *Worker {
	w := Worker{
		pools:   pools,
		ledgerz: ledgerz,
	}

	w.Location = location
	w.Spec = spec
	w.OnWork = w.onWork
	return &w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	pools, e := w.pools.List(ctx)
	if e != nil {
		log.WithError(e).Errorln("pools.List")
		return e
	}

	for _, p := range pools {
		pool, e := w.ledgerz.AccruePool(ctx, p.AssetID)
		if e != nil {
			log.WithError(e).WithField("asset", p.AssetID).Errorln("AccruePool")
			continue
		}

		metrics.ObservePool(pool.AssetID, pool.TotalDeposits, pool.TotalBorrows)
	}

	return nil
}
