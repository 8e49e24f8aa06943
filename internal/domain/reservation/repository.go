package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, res *Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

// Save writes every mutable column of res.
func (r *Repository) Save(ctx context.Context, res *Reservation) error {
	return r.db.WithContext(ctx).
		Model(res).
		Omit(clause.Associations).
		Select("equipment_id", "user_id", "responsible_id", "start_date", "end_date", "status_id", "updated_at").
		Updates(res).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Reservation{}, id).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	var res Reservation
	if err := r.db.WithContext(ctx).Preload("Status").First(&res, id).Error; err != nil {
		return nil, notFound(err, id)
	}
	return &res, nil
}

// GetForUpdate loads the row with SELECT ... FOR UPDATE.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, id).Error
	if err != nil {
		return nil, notFound(err, id)
	}
	return &res, nil
}

// BusySlots lists reservations on equipmentID that intersect [from,to].
func (r *Repository) BusySlots(ctx context.Context, equipmentID int64, from, to time.Time) ([]Slot, error) {
	var rows []Reservation
	err := r.db.WithContext(ctx).
		Select("id", "start_date", "end_date").
		Where("equipment_id = ? AND start_date <= ? AND end_date >= ?", equipmentID, to.UTC(), from.UTC()).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, Slot{ReservationID: row.ID, Start: row.StartDate.UTC(), End: row.EndDate.UTC()})
	}
	return slots, nil
}

func (r *Repository) CountByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Reservation{}).Where("equipment_id = ?", equipmentID).Count(&n).Error
	return n, err
}

func notFound(err error, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
	}
	return err
}
