package history

import (
	"time"

	"equiptrack/internal/domain/status"
)

// History is an append-only record of a terminal or issuance event.
type History struct {
	ID            int64                 `json:"id" gorm:"primaryKey"`
	EquipmentID   int64                 `json:"equipment_id" gorm:"not null;index"`
	UserID        int64                 `json:"user_id" gorm:"not null;index"`
	ResponsibleID int64                 `json:"responsible_id" gorm:"not null"`
	StatusID      int64                 `json:"status_id" gorm:"not null"`
	Status        *status.HistoryStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	Date          time.Time             `json:"date" gorm:"not null"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (History) TableName() string { return "history" }

// Entry is what a caller supplies to record an event.
type Entry struct {
	EquipmentID   int64
	UserID        int64
	ResponsibleID int64
	Status        status.HistoryName
	Date          time.Time
}
