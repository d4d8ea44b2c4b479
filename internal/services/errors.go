package services

import "errors"

// Report service errors
var (
	// ErrNoInput is returned when neither an input file nor a dataset
	// directory is configured.
	ErrNoInput = errors.New("no input file or dataset directory configured")
)
