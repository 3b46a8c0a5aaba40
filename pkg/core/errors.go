package core

import "errors"

// Common errors.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNotWatchable    = errors.New("storage does not support watching")
	ErrReadOnly        = errors.New("notebook is in read-only mode")
)
