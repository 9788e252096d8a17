package domain

import "errors"

var (
	ErrNotFound       = errors.New("catalog entry not found")
	ErrInvalidCatalog = errors.New("invalid catalog document")
)
