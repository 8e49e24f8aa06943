package history

import "time"

type RecordRequest struct {
	EquipmentID   int64     `json:"equipment_id" validate:"required,gt=0"`
	UserID        int64     `json:"user_id" validate:"required,gt=0"`
	ResponsibleID int64     `json:"responsible_id" validate:"omitempty,gt=0"`
	Status        string    `json:"status" validate:"required,oneof=cancelled rejected returned not_returned"`
	Date          time.Time `json:"date" validate:"required"`
}
