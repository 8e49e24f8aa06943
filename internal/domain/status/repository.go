package status

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("status not found")

// Dictionary resolves status names and ids against the seeded tables.
type Dictionary struct {
	db *gorm.DB
}

func NewDictionary(db *gorm.DB) *Dictionary {
	return &Dictionary{db: db}
}

// WithTx returns a dictionary bound to tx.
func (d *Dictionary) WithTx(tx *gorm.DB) *Dictionary {
	return &Dictionary{db: tx}
}

func (d *Dictionary) EquipmentStatus(ctx context.Context, name EquipmentName) (*EquipmentStatus, error) {
	var st EquipmentStatus
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&st).Error; err != nil {
		return nil, notFound(err, "equipment status %q", name)
	}
	return &st, nil
}

func (d *Dictionary) ReservationStatus(ctx context.Context, name ReservationName) (*ReservationStatus, error) {
	var st ReservationStatus
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&st).Error; err != nil {
		return nil, notFound(err, "reservation status %q", name)
	}
	return &st, nil
}

func (d *Dictionary) ReservationStatusByID(ctx context.Context, id int64) (*ReservationStatus, error) {
	var st ReservationStatus
	if err := d.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err, "reservation status %d", id)
	}
	return &st, nil
}

func (d *Dictionary) HistoryStatus(ctx context.Context, name HistoryName) (*HistoryStatus, error) {
	var st HistoryStatus
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&st).Error; err != nil {
		return nil, notFound(err, "history status %q", name)
	}
	return &st, nil
}

// Seed inserts every dictionary value that is not present yet.
func (d *Dictionary) Seed(ctx context.Context) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skipExisting := clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}

		for _, name := range EquipmentNames {
			if err := tx.Clauses(skipExisting).Create(&EquipmentStatus{Name: name}).Error; err != nil {
				return err
			}
		}
		for _, name := range ReservationNames {
			if err := tx.Clauses(skipExisting).Create(&ReservationStatus{Name: name}).Error; err != nil {
				return err
			}
		}
		for _, name := range HistoryNames {
			if err := tx.Clauses(skipExisting).Create(&HistoryStatus{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
	}
	return err
}
