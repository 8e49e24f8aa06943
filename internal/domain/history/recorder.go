package history

import (
	"context"

	"gorm.io/gorm"

	"equiptrack/internal/domain/status"
)

// Recorder appends history rows inside a caller-owned transaction.
type Recorder struct {
	repo     *Repository
	statuses *status.Dictionary
}

func NewRecorder(repo *Repository, statuses *status.Dictionary) *Recorder {
	return &Recorder{repo: repo, statuses: statuses}
}

// Record resolves the status name and appends one row through tx.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, e Entry) (*History, error) {
	st, err := r.statuses.WithTx(tx).HistoryStatus(ctx, e.Status)
	if err != nil {
		return nil, err
	}

	h := &History{
		EquipmentID:   e.EquipmentID,
		UserID:        e.UserID,
		ResponsibleID: e.ResponsibleID,
		StatusID:      st.ID,
		Date:          e.Date.UTC(),
	}
	if err := r.repo.WithTx(tx).Append(ctx, h); err != nil {
		return nil, err
	}
	h.Status = st
	return h, nil
}
