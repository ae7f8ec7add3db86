package surface

import "errors"

var (
	// ErrNotConfigured is returned when a drawable is requested before the
	// compositor has negotiated any dimensions.
	ErrNotConfigured = errors.New("surface: not configured")

	// ErrNoDrawable is returned when Submit runs without an acquired and
	// painted drawable for the current dimensions.
	ErrNoDrawable = errors.New("surface: no drawable acquired")

	// ErrStoreClosed is returned when the backing store is used after Close.
	ErrStoreClosed = errors.New("surface: backing store closed")
)
