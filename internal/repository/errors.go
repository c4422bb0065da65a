package repository

import "errors"

// ErrNotFound is returned when the submission to update does not exist.
var ErrNotFound = errors.New("not found")
