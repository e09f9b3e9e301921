// Package memory in-memory implementation of every ledger store, for tests
// and the dev mode. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lendingpool/core"
)

type positionKey struct {
	user  string
	asset string
}

// Store implements core.PoolStore, core.PositionStore, core.TransactionStore,
// core.TransferStore and core.LedgerStore. Values are copied in and out.
type Store struct {
	mu           sync.RWMutex
	seq          uint64
	pools        map[string]*core.Pool
	positions    map[positionKey]*core.Position
	transactions []*core.Transaction
	transfers    []*core.Transfer
}

// New new memory store
func New() *Store {
	return &Store{
		pools:     make(map[string]*core.Pool),
		positions: make(map[positionKey]*core.Position),
	}
}

func (s *Store) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *Store) Create(_ context.Context, pool *core.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[pool.AssetID]; ok {
		return core.ErrPoolExists
	}

	now := time.Now()
	pool.ID = s.nextID()
	pool.CreatedAt = now
	pool.UpdatedAt = now
	s.pools[pool.AssetID] = pool.Clone()
	return nil
}

func (s *Store) Find(_ context.Context, assetID string) (*core.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[assetID]
	if !ok {
		return nil, core.ErrPoolNotFound
	}

	return pool.Clone(), nil
}

func (s *Store) List(_ context.Context) ([]*core.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools := make([]*core.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, p.Clone())
	}

	sort.Slice(pools, func(i, j int) bool { return pools[i].ID < pools[j].ID })
	return pools, nil
}

// Positions view of the store as core.PositionStore, whose Find differs
// from the pool store's
func (s *Store) Positions() core.PositionStore {
	return positionStore{s}
}

type positionStore struct {
	s *Store
}

func (p positionStore) Find(_ context.Context, userID, assetID string) (*core.Position, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	if pos, ok := p.s.positions[positionKey{userID, assetID}]; ok {
		return pos.Clone(), nil
	}

	return &core.Position{UserID: userID, AssetID: assetID}, nil
}

func (p positionStore) FindByUser(_ context.Context, userID string) ([]*core.Position, error) {
	return p.filter(func(pos *core.Position) bool { return pos.UserID == userID }), nil
}

func (p positionStore) ListByAsset(_ context.Context, assetID string) ([]*core.Position, error) {
	return p.filter(func(pos *core.Position) bool { return pos.AssetID == assetID }), nil
}

func (p positionStore) Borrowers(_ context.Context) ([]string, error) {
	set := map[string]bool{}
	for _, pos := range p.filter(func(pos *core.Position) bool { return pos.BorrowShares > 0 }) {
		set[pos.UserID] = true
	}

	users := make([]string, 0, len(set))
	for u := range set {
		users = append(users, u)
	}

	sort.Strings(users)
	return users, nil
}

func (p positionStore) filter(match func(pos *core.Position) bool) []*core.Position {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var positions []*core.Position
	for _, pos := range p.s.positions {
		if match(pos) {
			positions = append(positions, pos.Clone())
		}
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].ID < positions[j].ID })
	return positions
}

func (s *Store) FindByTraceID(_ context.Context, traceID string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions {
		if tx.TraceID == traceID {
			c := *tx
			return &c, nil
		}
	}

	return &core.Transaction{}, nil
}

func (s *Store) ListByUser(_ context.Context, userID string, limit int) ([]*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []*core.Transaction
	for i := len(s.transactions) - 1; i >= 0 && (limit <= 0 || len(txs) < limit); i-- {
		if tx := s.transactions[i]; tx.UserID == userID {
			c := *tx
			txs = append(txs, &c)
		}
	}

	return txs, nil
}

func (s *Store) ListPending(_ context.Context, limit int) ([]*core.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transfers []*core.Transfer
	for _, t := range s.transfers {
		if limit > 0 && len(transfers) >= limit {
			break
		}

		if t.Status == core.TransferStatusPending {
			c := *t
			transfers = append(transfers, &c)
		}
	}

	return transfers, nil
}

func (s *Store) ListByOperation(_ context.Context, traceID string) ([]*core.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transfers []*core.Transfer
	for _, t := range s.transfers {
		if t.OperationTraceID == traceID {
			c := *t
			transfers = append(transfers, &c)
		}
	}

	return transfers, nil
}

func (s *Store) MarkDone(_ context.Context, transfer *core.Transfer) error {
	return s.updateTransfer(transfer.TraceID, func(t *core.Transfer) {
		t.Status = core.TransferStatusDone
		t.LastError = ""
	}, transfer)
}

func (s *Store) MarkFailed(_ context.Context, transfer *core.Transfer, reason string) error {
	return s.updateTransfer(transfer.TraceID, func(t *core.Transfer) {
		t.Attempts++
		t.LastError = reason
	}, transfer)
}

func (s *Store) updateTransfer(traceID string, fn func(t *core.Transfer), out *core.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transfers {
		if t.TraceID == traceID {
			fn(t)
			t.UpdatedAt = time.Now()
			*out = *t
			return nil
		}
	}

	return core.ErrUnknown
}

// Commit checks every version first and only then writes, so a conflict
// leaves the store untouched
func (s *Store) Commit(_ context.Context, c *core.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range c.Pools {
		if err := p.Validate(); err != nil {
			return err
		}

		cur, ok := s.pools[p.AssetID]
		if !ok {
			return core.ErrPoolNotFound
		}

		if cur.Version != p.Version {
			return core.ErrVersionConflict
		}
	}

	for _, pos := range c.Positions {
		cur, ok := s.positions[positionKey{pos.UserID, pos.AssetID}]
		if pos.ID == 0 && ok {
			return core.ErrVersionConflict
		}

		if pos.ID > 0 && (!ok || cur.Version != pos.Version) {
			return core.ErrVersionConflict
		}
	}

	if tx := c.Transaction; tx != nil {
		for _, existing := range s.transactions {
			if existing.TraceID == tx.TraceID {
				return core.ErrVersionConflict
			}
		}
	}

	for _, t := range c.Transfers {
		for _, existing := range s.transfers {
			if existing.TraceID == t.TraceID {
				return core.ErrVersionConflict
			}
		}
	}

	now := time.Now()
	for _, p := range c.Pools {
		p.Version++
		p.UpdatedAt = now
		s.pools[p.AssetID] = p.Clone()
	}

	for _, pos := range c.Positions {
		if pos.ID == 0 {
			pos.ID = s.nextID()
			pos.CreatedAt = now
		}

		pos.Version++
		pos.UpdatedAt = now
		s.positions[positionKey{pos.UserID, pos.AssetID}] = pos.Clone()
	}

	if tx := c.Transaction; tx != nil {
		tx.ID = s.nextID()
		tx.CreatedAt = now
		cp := *tx
		s.transactions = append(s.transactions, &cp)
	}

	for _, t := range c.Transfers {
		t.ID = s.nextID()
		t.CreatedAt = now
		t.UpdatedAt = now
		cp := *t
		s.transfers = append(s.transfers, &cp)
	}

	return nil
}
