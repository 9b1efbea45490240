package contribution

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrPersistence    = errors.New("persistence_error")
)
