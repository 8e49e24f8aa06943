package equipment

type CreateRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	SerialNumber string `json:"serial_number" validate:"required,max=128"`
	Type         string `json:"type" validate:"max=64"`
}
