package insights

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrProfileIncomplete = errors.New("profile incomplete: industry not set")
	ErrNotFound          = errors.New("industry insight not found")
)
