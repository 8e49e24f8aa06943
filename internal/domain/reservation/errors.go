package reservation

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("reservation overlaps an existing reservation")
	ErrUnauthorized = errors.New("caller may not manage reservations")
	ErrValidation   = errors.New("invalid reservation")
)
