package transfer

import (
	"context"

	"lendingpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.TransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) ListPending(ctx context.Context, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		limit = 100
	}

	var transfers []*core.Transfer
	if e := s.db.View().Where("status=?", core.TransferStatusPending).Order("id ASC").Limit(limit).Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}

func (s *transferStore) ListByOperation(ctx context.Context, traceID string) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if e := s.db.View().Where("operation_trace_id=?", traceID).Order("id ASC").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}

func (s *transferStore) MarkDone(ctx context.Context, transfer *core.Transfer) error {
	updates := map[string]interface{}{
		"status":     core.TransferStatusDone,
		"last_error": "",
	}

	if e := s.db.Update().Model(core.Transfer{}).Where("trace_id=?", transfer.TraceID).Updates(updates).Error; e != nil {
		return e
	}

	transfer.Status = core.TransferStatusDone
	transfer.LastError = ""
	return nil
}

func (s *transferStore) MarkFailed(ctx context.Context, transfer *core.Transfer, reason string) error {
	updates := map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": reason,
	}

	if e := s.db.Update().Model(core.Transfer{}).Where("trace_id=?", transfer.TraceID).Updates(updates).Error; e != nil {
		return e
	}

	transfer.Attempts++
	transfer.LastError = reason
	return nil
}
