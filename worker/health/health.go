package health

import (
	"context"
	"sync"
	"time"

	"lendingpool/core"
	"lendingpool/internal/metrics"
	"lendingpool/pkg/concurrency"
	"lendingpool/pkg/id"
	"lendingpool/pkg/resthttp"
	"lendingpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "health_scan_at"
	// scans closer than this to the last checkpoint are skipped, so several
	// worker processes sharing one database do not scan and alert twice
	minScanInterval = 30 * time.Second
)

// due reports whether a scan checkpointed at last may run again at now
func due(last, now time.Time) bool {
	return last.IsZero() || now.Sub(last) >= minScanInterval
}

// Worker reports borrowers whose health factor dropped below one
type Worker struct {
	worker.BaseJob
	positions core.PositionStore
	ledgerz   core.LedgerService
	property  property.Store
	limit     *concurrency.GoLimit
	// optional, receives the liquidatable list after every scan
	webhook   string
}

// New new health scan worker
func New(
	location, spec string,
	positions core.PositionStore,
	ledgerz core.LedgerService,
	property property.Store,
	webhook string,
) *Worker {
	w := Worker{
		positions: positions,
		ledgerz:   ledgerz,
		property:  property,
		limit:     concurrency.NewGoLimit(16),
		webhook:   webhook,
	}

	w.Location = location
	w.Spec = spec
	w.OnWork = w.onWork
	return &w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "health")
	ctx = logger.WithContext(ctx, log)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	if last := v.Time(); !due(last, time.Now()) {
		log.Debugf("skip, last scan %s ago", time.Since(last))
		return nil
	}

	liquidatable, err := w.scan(ctx)
	if err != nil {
		return err
	}

	metrics.LiquidatablePositions.Set(float64(len(liquidatable)))

	if len(liquidatable) > 0 && w.webhook != "" {
		if err := w.alert(ctx, liquidatable); err != nil {
			return err
		}
	}

	if err := w.property.Save(ctx, checkpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

func (w *Worker) scan(ctx context.Context) ([]*core.Health, error) {
	log := logger.FromContext(ctx)

	users, err := w.positions.Borrowers(ctx)
	if err != nil {
		log.WithError(err).Errorln("positions.Borrowers")
		return nil, err
	}

	var (
		mux          sync.Mutex
		liquidatable []*core.Health
	)

	concurrency.Await(w.limit, len(users), func(i int) {
		h, err := w.ledgerz.Health(ctx, users[i])
		if err != nil {
			log.WithError(err).WithField("user", users[i]).Errorln("ledgerz.Health")
			return
		}

		if !h.Liquidatable() {
			return
		}

		log.WithField("user", h.UserID).
			WithField("debt", h.DebtValue).
			WithField("factor", h.Factor).
			Infoln("position under collateralized")

		mux.Lock()
		liquidatable = append(liquidatable, h)
		mux.Unlock()
	})

	return liquidatable, nil
}

func (w *Worker) alert(ctx context.Context, liquidatable []*core.Health) error {
	body := map[string]interface{}{
		"liquidatable": liquidatable,
		"scanned_at":   time.Now(),
	}

	return resthttp.PostJSON(resthttp.WithRequestID(ctx, id.GenTraceID()), w.webhook, body)
}
