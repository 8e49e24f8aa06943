package equipment

import "errors"

var (
	ErrNotFound            = errors.New("equipment not found")
	ErrSerialAlreadyExists = errors.New("serial number already exists")
)
