// Package monitor implements the availability monitoring core: the alert
// rule engine, the seat-count ledger, the monitor registry, the alert log,
// and the polling scheduler.
package monitor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

// Limits are the seat-count thresholds read by the rule engine. Critical
// must be below Warning for the bands to nest.
type Limits struct {
	Critical int
	Warning  int
}

// Classify decides whether a fresh observation crossed a band boundary
// downward. prev is nil on the first-ever observation of a departure. At
// most one kind fires per call, in precedence order: sold out, critical,
// warning.
//
// A first observation of zero seats fires SOLD_OUT (nil previous counts as
// "not previously zero"); a first observation inside the critical or warning
// band fires that band's alert. Re-observing a value inside the same band
// stays silent until seats recover above the boundary and drop again.
// Recovering from zero into the critical band also fires, since sold out
// and critical are distinct conditions.
func Classify(prev *int, current int, limits Limits) (models.AlertKind, models.AlertLevel, bool) {
	switch {
	case current == 0 && (prev == nil || *prev != 0):
		return models.KindSoldOut, models.LevelCritical, true
	case 0 < current && current <= limits.Critical &&
		(prev == nil || *prev > limits.Critical || *prev == 0):
		// A previous observation of zero re-arms the critical band, so a
		// sold-out departure that regains a handful of seats alerts again.
		return models.KindCritical, models.LevelHigh, true
	case limits.Critical < current && current <= limits.Warning &&
		(prev == nil || *prev > limits.Warning):
		return models.KindWarning, models.LevelMedium, true
	}
	return "", "", false
}

// Evaluate runs Classify for one departure of a watched route and, when a
// boundary was crossed, builds the immutable alert record.
func Evaluate(prev *int, dep models.Departure, mon models.RouteMonitor, limits Limits) *models.Alert {
	kind, level, fired := Classify(prev, dep.SeatsAvailable, limits)
	if !fired {
		return nil
	}

	var message string
	switch kind {
	case models.KindSoldOut:
		message = fmt.Sprintf("🚨 SIN PUESTOS: %s - %s", dep.Operator, dep.DepartureTime)
	case models.KindCritical:
		message = fmt.Sprintf("⚠️ QUEDAN SOLO %d PUESTOS: %s - %s",
			dep.SeatsAvailable, dep.Operator, dep.DepartureTime)
	case models.KindWarning:
		message = fmt.Sprintf("⚡ Quedan %d puestos: %s - %s",
			dep.SeatsAvailable, dep.Operator, dep.DepartureTime)
	}

	return &models.Alert{
		ID:             uuid.New().String(),
		Kind:           kind,
		Level:          level,
		Message:        message,
		Origin:         mon.Origin,
		Destination:    mon.Destination,
		Date:           mon.Date,
		Operator:       dep.Operator,
		DepartureTime:  dep.DepartureTime,
		SeatsAvailable: dep.SeatsAvailable,
		SeatsTotal:     dep.SeatsTotal,
		Price:          dep.TotalPrice,
		CreatedAt:      time.Now(),
	}
}
