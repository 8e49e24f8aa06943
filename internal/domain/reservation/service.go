package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"equiptrack/internal/cache"
	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/history"
	"equiptrack/internal/domain/lifecycle"
	"equiptrack/internal/domain/status"
	"equiptrack/internal/pkg/dberr"
)

// Coordinator owns every write that touches reservations. Each call runs in
// one transaction that first locks the affected equipment rows, so writers
// on the same equipment are serialized and writers on different equipment
// are not.
type Coordinator struct {
	db        *gorm.DB
	repo      *Repository
	checker   *Checker
	equipment *equipment.Repository
	users     *auth.Repository
	statuses  *status.Dictionary
	recorder  *history.Recorder
	busy      cache.BusySlots
	logger    *zap.Logger
}

type Deps struct {
	Repo      *Repository
	Checker   *Checker
	Equipment *equipment.Repository
	Users     *auth.Repository
	Statuses  *status.Dictionary
	Recorder  *history.Recorder
	Busy      cache.BusySlots
	Logger    *zap.Logger
}

func NewCoordinator(db *gorm.DB, d Deps) *Coordinator {
	busy := d.Busy
	if busy == nil {
		busy = cache.Nop{}
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		db:        db,
		repo:      d.Repo,
		checker:   d.Checker,
		equipment: d.Equipment,
		users:     d.Users,
		statuses:  d.Statuses,
		recorder:  d.Recorder,
		busy:      busy,
		logger:    logger,
	}
}

// Create stores a reservation after proving its interval is free and marks
// the equipment reserved, whatever the requested status.
func (s *Coordinator) Create(ctx context.Context, caller auth.Caller, in CreateInput) (*Reservation, error) {
	start, end, err := normalizeInterval(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	userID := in.UserID
	if userID == 0 {
		userID = caller.UserID
	}
	if userID != caller.UserID && !auth.Can(caller, auth.ManageReservations) {
		return nil, ErrUnauthorized
	}
	responsibleID := in.ResponsibleID
	if responsibleID == 0 {
		responsibleID = userID
	}

	var created *Reservation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.equipment.WithTx(tx).LockForUpdate(ctx, in.EquipmentID)
		if err != nil {
			return err
		}
		if err := s.resolveUsers(ctx, tx, userID, responsibleID); err != nil {
			return err
		}

		st, err := s.resolveStatus(ctx, tx, in.Status, in.StatusID, status.ReservationPending)
		if err != nil {
			return err
		}
		if lifecycle.IsTerminal(st.Name) {
			return fmt.Errorf("%w: cannot create a reservation in status %q", ErrValidation, st.Name)
		}

		overlap, err := s.checker.WithTx(tx).HasOverlap(ctx, in.EquipmentID, start, end, 0)
		if err != nil {
			return err
		}
		if overlap {
			return ErrConflict
		}

		res := &Reservation{
			EquipmentID:   in.EquipmentID,
			UserID:        userID,
			ResponsibleID: responsibleID,
			CreatedBy:     caller.UserID,
			StartDate:     start,
			EndDate:       end,
			StatusID:      st.ID,
		}
		if err := s.repo.WithTx(tx).Create(ctx, res); err != nil {
			return err
		}
		if err := s.setEquipmentStatus(ctx, tx, locked[in.EquipmentID], lifecycle.OnCreate()); err != nil {
			return err
		}

		res.Status = st
		created = res
		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.invalidate(ctx, created.EquipmentID)
	s.logger.Info("reservation created",
		zap.Int64("reservation_id", created.ID),
		zap.Int64("equipment_id", created.EquipmentID),
		zap.String("status", string(created.Status.Name)),
		zap.Int64("caller_id", caller.UserID))
	return created, nil
}

// Update moves a reservation to a new equipment, interval and status. A
// terminal status writes one history row and deletes the reservation; any
// other status updates the row and the equipment status.
func (s *Coordinator) Update(ctx context.Context, caller auth.Caller, id int64, in UpdateInput) (*Outcome, error) {
	if !auth.Can(caller, auth.ManageReservations) {
		return nil, ErrUnauthorized
	}
	start, end, err := normalizeInterval(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	var (
		out         *Outcome
		previousEqp int64
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.repo.WithTx(tx).GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previousEqp = res.EquipmentID

		locked, err := s.equipment.WithTx(tx).LockForUpdate(ctx, res.EquipmentID, in.EquipmentID)
		if err != nil {
			return err
		}

		st, err := s.resolveStatus(ctx, tx, in.Status, in.StatusID, "")
		if err != nil {
			return err
		}
		effect, err := lifecycle.Transition(st.Name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}

		overlap, err := s.checker.WithTx(tx).HasOverlap(ctx, in.EquipmentID, start, end, res.ID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrConflict
		}

		if in.EquipmentID != res.EquipmentID {
			if err := s.setEquipmentStatus(ctx, tx, locked[res.EquipmentID], lifecycle.OnDelete()); err != nil {
				return err
			}
		}

		res.EquipmentID = in.EquipmentID
		res.StartDate = start
		res.EndDate = end
		res.StatusID = st.ID
		res.Status = st

		if effect.DeletesReservation {
			h, err := s.recorder.Record(ctx, tx, history.Entry{
				EquipmentID:   res.EquipmentID,
				UserID:        res.UserID,
				ResponsibleID: caller.UserID,
				Status:        effect.History,
				Date:          res.EndDate,
			})
			if err != nil {
				return err
			}
			if err := s.repo.WithTx(tx).Delete(ctx, res.ID); err != nil {
				return err
			}
			out = &Outcome{Reservation: res, History: h, Deleted: true}
			return nil
		}

		if err := s.setEquipmentStatus(ctx, tx, locked[res.EquipmentID], effect.Equipment); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Save(ctx, res); err != nil {
			return err
		}
		out = &Outcome{Reservation: res}
		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.invalidate(ctx, previousEqp, out.Reservation.EquipmentID)
	fields := []zap.Field{
		zap.Int64("reservation_id", out.Reservation.ID),
		zap.Int64("equipment_id", out.Reservation.EquipmentID),
		zap.String("status", string(out.Reservation.Status.Name)),
		zap.Int64("caller_id", caller.UserID),
	}
	if out.Deleted {
		s.logger.Info("reservation closed", append(fields, zap.Int64("history_id", out.History.ID))...)
	} else {
		s.logger.Info("reservation updated", fields...)
	}
	return out, nil
}

// Delete removes a reservation and frees its equipment. No history row is
// written on this path.
func (s *Coordinator) Delete(ctx context.Context, caller auth.Caller, id int64) (*Reservation, error) {
	if !auth.Can(caller, auth.ManageReservations) {
		return nil, ErrUnauthorized
	}

	var deleted *Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.repo.WithTx(tx).GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		locked, err := s.equipment.WithTx(tx).LockForUpdate(ctx, res.EquipmentID)
		if err != nil {
			return err
		}
		if err := s.setEquipmentStatus(ctx, tx, locked[res.EquipmentID], lifecycle.OnDelete()); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Delete(ctx, res.ID); err != nil {
			return err
		}
		deleted = res
		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.invalidate(ctx, deleted.EquipmentID)
	s.logger.Info("reservation deleted",
		zap.Int64("reservation_id", deleted.ID),
		zap.Int64("equipment_id", deleted.EquipmentID),
		zap.Int64("caller_id", caller.UserID))
	return deleted, nil
}

func (s *Coordinator) Get(ctx context.Context, id int64) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// Availability is a plain read outside any transaction; a stale answer is
// only cosmetic because writes re-check under lock.
func (s *Coordinator) Availability(ctx context.Context, equipmentID int64, start, end time.Time, exclude int64) (bool, error) {
	start, end, err := normalizeInterval(start, end)
	if err != nil {
		return false, err
	}
	if _, err := s.equipment.GetByID(ctx, equipmentID); err != nil {
		return false, s.classify(err)
	}
	overlap, err := s.checker.HasOverlap(ctx, equipmentID, start, end, exclude)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// BusySlots lists live reservation windows intersecting [from,to], served
// from the cache when possible.
func (s *Coordinator) BusySlots(ctx context.Context, equipmentID int64, from, to time.Time) ([]Slot, error) {
	from, to, err := normalizeInterval(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := s.equipment.GetByID(ctx, equipmentID); err != nil {
		return nil, s.classify(err)
	}

	window := from.Format(time.RFC3339Nano) + "|" + to.Format(time.RFC3339Nano)
	var slots []Slot
	hit, err := s.busy.Get(ctx, equipmentID, window, &slots)
	if err != nil {
		s.logger.Warn("busy slots cache read failed", zap.Int64("equipment_id", equipmentID), zap.Error(err))
	}
	if hit {
		return slots, nil
	}

	slots, err = s.repo.BusySlots(ctx, equipmentID, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.busy.Set(ctx, equipmentID, window, slots); err != nil {
		s.logger.Warn("busy slots cache write failed", zap.Int64("equipment_id", equipmentID), zap.Error(err))
	}
	return slots, nil
}

func (s *Coordinator) resolveUsers(ctx context.Context, tx *gorm.DB, ids ...int64) error {
	users := s.users.WithTx(tx)
	for _, id := range ids {
		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// resolveStatus prefers id over name and falls back to def when both are empty.
func (s *Coordinator) resolveStatus(ctx context.Context, tx *gorm.DB, name status.ReservationName, id int64, def status.ReservationName) (*status.ReservationStatus, error) {
	dict := s.statuses.WithTx(tx)
	switch {
	case id != 0:
		st, err := dict.ReservationStatusByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if name != "" && name != st.Name {
			return nil, fmt.Errorf("%w: status %q does not match status_id %d", ErrValidation, name, id)
		}
		return st, nil
	case name != "":
		return dict.ReservationStatus(ctx, name)
	case def != "":
		return dict.ReservationStatus(ctx, def)
	default:
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
}

func (s *Coordinator) setEquipmentStatus(ctx context.Context, tx *gorm.DB, e *equipment.Equipment, name status.EquipmentName) error {
	if name == "" {
		return nil
	}
	st, err := s.statuses.WithTx(tx).EquipmentStatus(ctx, name)
	if err != nil {
		return err
	}
	return s.equipment.WithTx(tx).SetStatus(ctx, e, st.ID)
}

func (s *Coordinator) invalidate(ctx context.Context, equipmentIDs ...int64) {
	if err := s.busy.Invalidate(ctx, equipmentIDs...); err != nil {
		s.logger.Warn("busy slots cache invalidation failed", zap.Int64s("equipment_ids", equipmentIDs), zap.Error(err))
	}
}

// classify folds collaborator and storage errors into this package's taxonomy.
func (s *Coordinator) classify(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrValidation):
		return err
	case errors.Is(err, equipment.ErrNotFound),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, status.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case dberr.IsConflict(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		s.logger.Error("reservation write failed", zap.Error(err))
		return err
	}
}

func normalizeInterval(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return start, end, fmt.Errorf("%w: start and end are required", ErrValidation)
	}
	if !start.Before(end) {
		return start, end, fmt.Errorf("%w: start must be before end", ErrValidation)
	}
	return start.UTC(), end.UTC(), nil
}
