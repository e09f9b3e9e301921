package position

import (
	"context"
	"fmt"
	"time"

	"lendingpool/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read-through cache for the http api. The ledger must read the
// uncached store, a stale version would only end in a conflict.
func Cache(store core.PositionStore, exp time.Duration) core.PositionStore {
	return &cachePositionStore{
		PositionStore: store,
		cache:         gcache.New(2048).LRU().Expiration(exp).Build(),
		sf:            &singleflight.Group{},
	}
}

type cachePositionStore struct {
	core.PositionStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePositionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	key := fmt.Sprintf("position:%s:%s", userID, assetID)
	if v, err := s.cache.Get(key); err == nil {
		if pos, ok := v.(*core.Position); ok {
			return pos.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		pos, err := s.PositionStore.Find(ctx, userID, assetID)
		if err != nil {
			return nil, err
		}

		if pos.ID > 0 {
			_ = s.cache.Set(key, pos)
		}

		return pos, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Position).Clone(), nil
}

func (s *cachePositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	key := "positions:" + userID
	if v, err := s.cache.Get(key); err == nil {
		if positions, ok := v.([]*core.Position); ok {
			return clone(positions), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		positions, err := s.PositionStore.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, positions)
		return positions, nil
	})
	if err != nil {
		return nil, err
	}

	return clone(v.([]*core.Position)), nil
}

func clone(positions []*core.Position) []*core.Position {
	out := make([]*core.Position, len(positions))
	for i, pos := range positions {
		out[i] = pos.Clone()
	}

	return out
}
