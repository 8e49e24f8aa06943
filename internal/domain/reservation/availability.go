package reservation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Overlaps reports whether closed intervals [s1,e1] and [s2,e2] share an
// instant. Touching endpoints overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// Checker answers overlap questions against the reservations table. Only
// live reservations exist in the table, so no status filter is applied.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

func (c *Checker) WithTx(tx *gorm.DB) *Checker {
	return &Checker{db: tx}
}

// HasOverlap reports whether any reservation on equipmentID intersects
// [start,end], ignoring exclude when it is non-zero.
func (c *Checker) HasOverlap(ctx context.Context, equipmentID int64, start, end time.Time, exclude int64) (bool, error) {
	q := c.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("equipment_id = ? AND start_date <= ? AND end_date >= ?", equipmentID, end.UTC(), start.UTC())
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
