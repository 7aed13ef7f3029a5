package redbus

import "errors"

var (
	// ErrInvalidDate is returned when a travel date matches none of the
	// accepted input formats.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrProviderUnavailable is returned when redBus answers with a
	// non-success status or does not answer within the timeout.
	ErrProviderUnavailable = errors.New("search provider unavailable")
)
