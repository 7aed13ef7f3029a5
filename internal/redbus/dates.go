package redbus

import (
	"fmt"
	"strings"
	"time"
)

// dojLayout is the departure-date format redBus expects, e.g. "24-Dec-2025".
const dojLayout = "02-Jan-2006"

var inputLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// FormatDate normalizes a user-supplied travel date to the provider format.
// Accepted inputs are ISO (YYYY-MM-DD), DD-MM-YYYY, DD/MM/YYYY, or a date
// already in provider format, which passes through unchanged.
func FormatDate(input string) (string, error) {
	for _, layout := range inputLayouts {
		if d, err := time.Parse(layout, input); err == nil {
			return d.Format(dojLayout), nil
		}
	}

	// Already provider-formatted: DD-Mon-YYYY has a three-letter month in
	// the middle segment.
	parts := strings.Split(input, "-")
	if len(parts) == 3 && len(parts[1]) == 3 {
		if _, err := time.Parse(dojLayout, input); err == nil {
			return input, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
}
