package reservation

import (
	"time"

	"equiptrack/internal/domain/status"
)

// CreateRequest is the body of POST /reservations. user_id and
// responsible_id default to the caller; status defaults to pending.
type CreateRequest struct {
	EquipmentID   int64     `json:"equipment_id" validate:"required,gt=0"`
	UserID        int64     `json:"user_id" validate:"omitempty,gt=0"`
	ResponsibleID int64     `json:"responsible_id" validate:"omitempty,gt=0"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	Status        string    `json:"status" validate:"omitempty,max=32"`
	StatusID      int64     `json:"status_id" validate:"omitempty,gt=0"`
}

// UpdateRequest is the body of PUT /reservations/:id. Either status or
// status_id is required.
type UpdateRequest struct {
	EquipmentID int64     `json:"equipment_id" validate:"required,gt=0"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Status      string    `json:"status" validate:"required_without=StatusID"`
	StatusID    int64     `json:"status_id" validate:"omitempty,gt=0"`
}

type CreateInput struct {
	EquipmentID   int64
	UserID        int64
	ResponsibleID int64
	Start         time.Time
	End           time.Time
	Status        status.ReservationName
	StatusID      int64
}

type UpdateInput struct {
	EquipmentID int64
	Start       time.Time
	End         time.Time
	Status      status.ReservationName
	StatusID    int64
}

func (r CreateRequest) Input() CreateInput {
	return CreateInput{
		EquipmentID:   r.EquipmentID,
		UserID:        r.UserID,
		ResponsibleID: r.ResponsibleID,
		Start:         r.StartDate,
		End:           r.EndDate,
		Status:        status.ReservationName(r.Status),
		StatusID:      r.StatusID,
	}
}

func (r UpdateRequest) Input() UpdateInput {
	return UpdateInput{
		EquipmentID: r.EquipmentID,
		Start:       r.StartDate,
		End:         r.EndDate,
		Status:      status.ReservationName(r.Status),
		StatusID:    r.StatusID,
	}
}

type AvailabilityResponse struct {
	EquipmentID int64     `json:"equipment_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Available   bool      `json:"available"`
}
