package domain

import "errors"

var (
	ErrNotFound        = errors.New("template not found")
	ErrVersionConflict = errors.New("template version conflict")
)
