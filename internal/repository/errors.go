package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrStatusNotFound = errors.New("task status not found")
)
