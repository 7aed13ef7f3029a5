package monitor

import "errors"

// ErrMonitorNotFound is returned when a registry operation names an unknown
// monitor ID.
var ErrMonitorNotFound = errors.New("monitored route not found")
