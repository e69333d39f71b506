package patient

import "errors"

var (
	ErrNotFound = errors.New("patient not found")
	ErrConflict = errors.New("patient with this email already exists")
)
