package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/lifecycle"
	"equiptrack/internal/domain/status"
)

type Service struct {
	db        *gorm.DB
	repo      *Repository
	recorder  *Recorder
	equipment *equipment.Repository
	users     *auth.Repository
	statuses  *status.Dictionary
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo *Repository,
	recorder *Recorder,
	equipmentRepo *equipment.Repository,
	users *auth.Repository,
	statuses *status.Dictionary,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		recorder:  recorder,
		equipment: equipmentRepo,
		users:     users,
		statuses:  statuses,
		logger:    logger,
	}
}

// RecordIssuance appends an event outside the reservation path and moves the
// equipment to the status the event implies, in one transaction.
func (s *Service) RecordIssuance(ctx context.Context, caller auth.Caller, req RecordRequest) (*History, error) {
	if !auth.Can(caller, auth.RecordHistory) {
		return nil, ErrUnauthorized
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	responsible := req.ResponsibleID
	if responsible == 0 {
		responsible = caller.UserID
	}
	entry := Entry{
		EquipmentID:   req.EquipmentID,
		UserID:        req.UserID,
		ResponsibleID: responsible,
		Status:        status.HistoryName(req.Status),
		Date:          req.Date,
	}

	var recorded *History
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.equipment.WithTx(tx).LockForUpdate(ctx, entry.EquipmentID)
		if err != nil {
			return err
		}
		users := s.users.WithTx(tx)
		if _, err := users.GetByID(ctx, entry.UserID); err != nil {
			return err
		}
		if _, err := users.GetByID(ctx, entry.ResponsibleID); err != nil {
			return err
		}

		h, err := s.recorder.Record(ctx, tx, entry)
		if err != nil {
			return err
		}

		if next, ok := lifecycle.HistoryEffect(entry.Status); ok {
			st, err := s.statuses.WithTx(tx).EquipmentStatus(ctx, next)
			if err != nil {
				return err
			}
			if err := s.equipment.WithTx(tx).SetStatus(ctx, locked[entry.EquipmentID], st.ID); err != nil {
				return err
			}
		}

		recorded = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("history recorded",
		zap.Int64("history_id", recorded.ID),
		zap.Int64("equipment_id", recorded.EquipmentID),
		zap.String("status", string(entry.Status)),
		zap.Int64("responsible_id", recorded.ResponsibleID))
	return recorded, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*History, error) {
	return s.repo.GetByID(ctx, id)
}
