package reservation

import (
	"time"

	"equiptrack/internal/domain/history"
	"equiptrack/internal/domain/status"
)

// Reservation is a live claim on equipment over a closed interval. Rows
// reaching a terminal status are transcribed to history and deleted.
type Reservation struct {
	ID            int64                     `json:"id" gorm:"primaryKey"`
	EquipmentID   int64                     `json:"equipment_id" gorm:"not null;index:idx_reservations_equipment_window,priority:1"`
	UserID        int64                     `json:"user_id" gorm:"not null;index"`
	ResponsibleID int64                     `json:"responsible_id" gorm:"not null"`
	CreatedBy     int64                     `json:"created_by" gorm:"not null"`
	StartDate     time.Time                 `json:"start_date" gorm:"not null;index:idx_reservations_equipment_window,priority:2"`
	EndDate       time.Time                 `json:"end_date" gorm:"not null;index:idx_reservations_equipment_window,priority:3"`
	StatusID      int64                     `json:"status_id" gorm:"not null"`
	Status        *status.ReservationStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }

// Slot is a busy window on one equipment.
type Slot struct {
	ReservationID int64     `json:"reservation_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Outcome is what Update returns. When Deleted is set, Reservation is a
// tombstone of the removed row and History holds the entry that replaced it.
type Outcome struct {
	Reservation *Reservation     `json:"reservation"`
	History     *history.History `json:"history,omitempty"`
	Deleted     bool             `json:"deleted"`
}
