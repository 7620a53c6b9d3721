package errors

import "errors"

var (
	ErrNotFound = errors.New("facility not found")
)
