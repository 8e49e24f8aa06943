package equipment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, e *Equipment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	var e Equipment
	err := r.db.WithContext(ctx).Preload("Status").First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &e, nil
}

// LockForUpdate loads the rows with SELECT ... FOR UPDATE in ascending id order
// so two writers touching the same pair of equipment cannot deadlock.
func (r *Repository) LockForUpdate(ctx context.Context, ids ...int64) (map[int64]*Equipment, error) {
	uniq := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	out := make(map[int64]*Equipment, len(uniq))
	for _, id := range uniq {
		var e Equipment
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
			}
			return nil, err
		}
		out[id] = &e
	}
	return out, nil
}

// SetStatus persists only the status column.
func (r *Repository) SetStatus(ctx context.Context, e *Equipment, statusID int64) error {
	e.StatusID = statusID
	e.Status = nil
	return r.db.WithContext(ctx).
		Model(e).
		Omit(clause.Associations).
		Update("status_id", statusID).Error
}
