package mfm

import "errors"

// Sentinel errors for the ambient layers. Parse and Render never fail.
var (
	// ErrValidation indicates configuration, such as a style table file,
	// failed validation.
	ErrValidation = errors.New("validation error")

	// ErrSourceTooLarge indicates a biography source exceeds the size limit
	// callers impose before parsing.
	ErrSourceTooLarge = errors.New("source too large")
)
