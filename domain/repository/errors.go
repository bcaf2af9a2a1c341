package repository

import "errors"

// ErrNotFound indicates the requested entity was not found.
var ErrNotFound = errors.New("entity not found")
