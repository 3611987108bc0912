package model

import "errors"

// Error taxonomy for the render pipeline. Stages wrap these sentinels
// with fmt.Errorf("...: %w", ...) so callers can classify failures with
// errors.Is while keeping stage context in the message.
var (
	// ErrInvalidInput covers empty or unsorted bar sequences and
	// non-positive canvas dimensions.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanvasTooSmall is returned when the canvas has no usable plot
	// area left after margins.
	ErrCanvasTooSmall = errors.New("canvas too small")

	// ErrNetwork is a transport-level fetch failure.
	ErrNetwork = errors.New("network error")

	// ErrAuth is an authentication/authorization failure from the data source.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound means the data source has no data for the symbol.
	ErrNotFound = errors.New("symbol not found")

	// ErrIO is a file-system failure while writing chart output.
	ErrIO = errors.New("io error")
)
