package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository only appends and reads; entries are never changed.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Append(ctx context.Context, h *History) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*History, error) {
	var h History
	if err := r.db.WithContext(ctx).Preload("Status").First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &h, nil
}

func (r *Repository) CountByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&History{}).Where("equipment_id = ?", equipmentID).Count(&n).Error
	return n, err
}
