package pool

import (
	"context"

	"lendingpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Create(ctx context.Context, pool *core.Pool) error {
	if _, err := s.Find(ctx, pool.AssetID); err == nil {
		return core.ErrPoolExists
	} else if err != core.ErrPoolNotFound {
		return err
	}

	return s.db.Update().Create(pool).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	var pool core.Pool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPoolNotFound
		}

		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) List(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Order("id").Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}
