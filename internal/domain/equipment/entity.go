package equipment

import (
	"time"

	"equiptrack/internal/domain/status"
)

type Equipment struct {
	ID           int64                   `json:"id" gorm:"primaryKey"`
	Name         string                  `json:"name" gorm:"size:255;not null"`
	SerialNumber string                  `json:"serial_number" gorm:"size:128;uniqueIndex;not null"`
	Type         string                  `json:"type" gorm:"size:64"`
	StatusID     int64                   `json:"status_id" gorm:"not null;index"`
	Status       *status.EquipmentStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipment" }

// StatusName is empty when the status association was not loaded.
func (e *Equipment) StatusName() status.EquipmentName {
	if e.Status == nil {
		return ""
	}
	return e.Status.Name
}
