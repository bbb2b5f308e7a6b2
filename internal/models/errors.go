package models

import "errors"

// ErrNotFound is returned when the catalog has no match for a request.
var ErrNotFound = errors.New("not found")
