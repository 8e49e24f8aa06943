package history

import "errors"

var (
	ErrNotFound     = errors.New("history entry not found")
	ErrUnauthorized = errors.New("caller may not record history")
	ErrValidation   = errors.New("invalid history entry")
)
