package equipment

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"equiptrack/internal/domain/status"
	"equiptrack/internal/pkg/dberr"
)

type Service struct {
	db       *gorm.DB
	repo     *Repository
	statuses *status.Dictionary
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo *Repository, statuses *status.Dictionary, logger *zap.Logger) *Service {
	return &Service{db: db, repo: repo, statuses: statuses, logger: logger}
}

// Create registers equipment as available.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Equipment, error) {
	var created *Equipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := s.statuses.WithTx(tx).EquipmentStatus(ctx, status.EquipmentAvailable)
		if err != nil {
			return err
		}

		e := &Equipment{
			Name:         strings.TrimSpace(req.Name),
			SerialNumber: strings.TrimSpace(req.SerialNumber),
			Type:         strings.TrimSpace(req.Type),
			StatusID:     st.ID,
		}
		if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrSerialAlreadyExists
			}
			return err
		}
		e.Status = st
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment created",
		zap.Int64("equipment_id", created.ID),
		zap.String("serial_number", created.SerialNumber))
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}
