package ledger

import (
	"context"
	"errors"
	"time"

	"lendingpool/core"
	"lendingpool/internal/clock"
	"lendingpool/internal/metrics"
	"lendingpool/pkg/compound"
	"lendingpool/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

type ledgerService struct {
	pools        core.PoolStore
	positions    core.PositionStore
	transactions core.TransactionStore
	ledger       core.LedgerStore
	risk         core.RiskService
	transferz    core.TransferService
	clock        clock.Clock
	locker       *locker
}

// New new ledger service
func New(
	pools core.PoolStore,
	positions core.PositionStore,
	transactions core.TransactionStore,
	ledger core.LedgerStore,
	risk core.RiskService,
	transferz core.TransferService,
	clock clock.Clock,
) core.LedgerService {
	return &ledgerService{
		pools:        pools,
		positions:    positions,
		transactions: transactions,
		ledger:       ledger,
		risk:         risk,
		transferz:    transferz,
		clock:        clock,
		locker:       newLocker(),
	}
}

type positionKey struct {
	user  string
	asset string
}

// operation working set of one ledger call. Everything in it is a copy;
// the stores only change through commit.
type operation struct {
	s         *ledgerService
	action    core.Action
	traceID   string
	now       time.Time
	pools     map[string]*core.Pool
	positions map[positionKey]*core.Position
	touched   []*core.Position
	transfers []*core.Transfer
}

func (op *operation) pool(assetID string) (*core.Pool, error) {
	pool, ok := op.pools[assetID]
	if !ok {
		return nil, core.ErrPoolNotFound
	}

	return pool, nil
}

// position loads (once) the position that will be written back
func (op *operation) position(ctx context.Context, userID, assetID string) (*core.Position, error) {
	key := positionKey{userID, assetID}
	if pos, ok := op.positions[key]; ok {
		return pos, nil
	}

	pos, e := op.s.positions.Find(ctx, userID, assetID)
	if e != nil {
		return nil, e
	}

	pos.LastUpdateTime = op.now
	op.positions[key] = pos
	op.touched = append(op.touched, pos)
	return pos, nil
}

// health of userID over every position, counting in-flight changes
func (op *operation) health(ctx context.Context, userID string) (*core.Health, error) {
	stored, e := op.s.positions.FindByUser(ctx, userID)
	if e != nil {
		return nil, e
	}

	positions := make([]*core.Position, 0, len(stored))
	for _, pos := range stored {
		if cur, ok := op.positions[positionKey{userID, pos.AssetID}]; ok {
			pos = cur
		}

		positions = append(positions, pos)
	}

	for key, pos := range op.positions {
		if key.user == userID && pos.ID == 0 {
			positions = append(positions, pos)
		}
	}

	return op.s.risk.Health(userID, positions, op.pools)
}

func (op *operation) transfer(direction core.TransferDirection, userID, assetID string, amount uint64) {
	op.transfers = append(op.transfers, &core.Transfer{
		TraceID:          id.SubTraceID(op.traceID, len(op.transfers)),
		OperationTraceID: op.traceID,
		OpponentID:       userID,
		Direction:        direction,
		AssetID:          assetID,
		Amount:           amount,
		Memo:             op.action.String(),
	})
}

type handler func(ctx context.Context, op *operation) (*core.Transaction, error)

// execute runs one ledger operation: idempotency check, locks, accrual of
// every locked pool, fn on copies, inbound settlement, then a single commit
// and delivery of the payouts
func (s *ledgerService) execute(ctx context.Context, action core.Action, req *core.Request, assets []string, fn handler) (*core.Transaction, error) {
	start := time.Now()
	if req.TraceID == "" {
		req.TraceID = id.GenTraceID()
	}

	log := logger.FromContext(ctx).WithField("action", action.String()).WithFields(logrus.Fields(structs.Map(req)))
	ctx = logger.WithContext(ctx, log)

	tx, e := s.run(ctx, action, req, assets, fn)
	s.report(log, action, start, e)
	return tx, e
}

func (s *ledgerService) run(ctx context.Context, action core.Action, req *core.Request, assets []string, fn handler) (*core.Transaction, error) {
	if action.ByUser() {
		if req.UserID == "" {
			return nil, core.ErrOperationForbidden
		}

		if req.Amount == 0 {
			return nil, core.ErrInvalidAmount
		}
	}

	if tx, e := s.committed(ctx, action, req); e != nil || tx != nil {
		return tx, e
	}

	unlock, e := s.locker.Lock(ctx, assets...)
	if e != nil {
		return nil, e
	}
	defer unlock()

	// a concurrent duplicate may have committed while waiting for the lock
	if tx, e := s.committed(ctx, action, req); e != nil || tx != nil {
		return tx, e
	}

	op := &operation{
		s:         s,
		action:    action,
		traceID:   req.TraceID,
		now:       s.clock.Now(),
		pools:     make(map[string]*core.Pool, len(assets)),
		positions: make(map[positionKey]*core.Position),
	}

	for _, asset := range assets {
		pool, e := s.pools.Find(ctx, asset)
		if e != nil {
			return nil, e
		}

		if e := compound.AccruePool(pool, op.now); e != nil {
			return nil, e
		}

		op.pools[asset] = pool
	}

	tx, e := fn(ctx, op)
	if e != nil {
		return nil, e
	}

	if e := s.settle(ctx, op.transfers); e != nil {
		return nil, e
	}

	commit := &core.Commit{
		Positions:   op.touched,
		Transaction: tx,
		Transfers:   op.transfers,
	}

	for _, pool := range op.pools {
		commit.Pools = append(commit.Pools, pool)
	}

	if e := s.ledger.Commit(ctx, commit); e != nil {
		return nil, e
	}

	for _, pool := range commit.Pools {
		metrics.ObservePool(pool.AssetID, pool.TotalDeposits, pool.TotalBorrows)
	}

	s.deliver(ctx, op.transfers)
	return tx, nil
}

// committed returns the transaction of an already applied request
func (s *ledgerService) committed(ctx context.Context, action core.Action, req *core.Request) (*core.Transaction, error) {
	tx, e := s.transactions.FindByTraceID(ctx, req.TraceID)
	if e != nil {
		return nil, e
	}

	if tx.ID == 0 {
		return nil, nil
	}

	if tx.Action != action || tx.UserID != req.UserID {
		return nil, core.ErrOperationForbidden
	}

	return tx, nil
}

// settle collects every inbound transfer. Custody dedups by trace id, so a
// retry of the same request after a failed commit does not charge twice.
func (s *ledgerService) settle(ctx context.Context, transfers []*core.Transfer) error {
	for _, t := range transfers {
		if t.Direction != core.TransferDirectionIn {
			continue
		}

		if e := s.transferz.Settle(ctx, t); e != nil {
			return e
		}
	}

	return nil
}

// deliver is best effort, failed payouts stay pending for the cashier
func (s *ledgerService) deliver(ctx context.Context, transfers []*core.Transfer) {
	for _, t := range transfers {
		if t.Direction != core.TransferDirectionOut {
			continue
		}

		_ = s.transferz.Deliver(ctx, t)
	}
}

func (s *ledgerService) report(log *logrus.Entry, action core.Action, start time.Time, err error) {
	metrics.OperationLatency.WithLabelValues(action.String()).Observe(time.Since(start).Seconds())

	result := "ok"
	var code core.ErrorCode
	switch {
	case err == nil:
		log.Debugln("committed")
	case errors.As(err, &code) && !code.IsFault():
		result = code.String()
		log.WithError(err).Infoln("rejected")
	default:
		result = "fault"
		log.WithError(err).Errorln("aborted")
	}

	metrics.OperationsTotal.WithLabelValues(action.String(), result).Inc()
}

// allAssets every pool, used by operations gated on health
func (s *ledgerService) allAssets(ctx context.Context) ([]string, error) {
	pools, e := s.pools.List(ctx)
	if e != nil {
		return nil, e
	}

	assets := make([]string, 0, len(pools))
	for _, p := range pools {
		assets = append(assets, p.AssetID)
	}

	return assets, nil
}

// withAsset all pools, failing when assetID is not one of them
func (s *ledgerService) withAsset(ctx context.Context, assetID string) ([]string, error) {
	assets, e := s.allAssets(ctx)
	if e != nil {
		return nil, e
	}

	for _, a := range assets {
		if a == assetID {
			return assets, nil
		}
	}

	return nil, core.ErrPoolNotFound
}
