package monitor

import (
	"strings"
	"sync"

	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

// Archiver mirrors appended alerts to durable storage. Archive failures
// must never affect the in-memory log.
type Archiver interface {
	SaveAlert(alert models.Alert) error
}

// AlertLog is the process-wide append-only sequence of emitted alerts.
// Unbounded by storage; bounded only by query limits.
type AlertLog struct {
	mu      sync.RWMutex
	alerts  []models.Alert
	archive Archiver
}

// NewAlertLog creates a log. archive may be nil when no mirroring is
// configured.
func NewAlertLog(archive Archiver) *AlertLog {
	return &AlertLog{archive: archive}
}

// Append records an emitted alert. The archive write happens under the
// same lock hold as the in-memory append, so the mirror receives alerts in
// log order even under concurrent appends.
func (l *AlertLog) Append(alert models.Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.alerts = append(l.alerts, alert)
	if l.archive != nil {
		if err := l.archive.SaveAlert(alert); err != nil {
			logger.Warn("Failed to archive alert %s: %v", alert.ID, err)
		}
	}
}

// Query returns alerts newest-first, optionally filtered by level
// (case-insensitive) and capped at limit. A zero limit returns everything.
func (l *AlertLog) Query(level string, limit int) []models.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	wantLevel := strings.ToUpper(strings.TrimSpace(level))
	out := make([]models.Alert, 0, len(l.alerts))
	for i := len(l.alerts) - 1; i >= 0; i-- {
		a := l.alerts[i]
		if wantLevel != "" && string(a.Level) != wantLevel {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ForRoute returns the newest alerts matching a monitor's route, capped at
// limit.
func (l *AlertLog) ForRoute(origin, destination, date string, limit int) []models.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Alert, 0, limit)
	for i := len(l.alerts) - 1; i >= 0; i-- {
		a := l.alerts[i]
		if a.Origin != origin || a.Destination != destination || a.Date != date {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Clear wipes the whole log at once. Administrative operation; the archive
// keeps its copies.
func (l *AlertLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = nil
}

// Len reports the number of recorded alerts.
func (l *AlertLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.alerts)
}
