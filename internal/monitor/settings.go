package monitor

import (
	"sync"
	"time"
)

// Settings is the process-wide mutable alert configuration. Administrative
// updates take effect on the next evaluation or sleep; last write wins.
type Settings struct {
	mu       sync.RWMutex
	critical int
	warning  int
	interval time.Duration
}

// SettingsSnapshot is a consistent read of the current configuration.
type SettingsSnapshot struct {
	Critical int           `json:"umbral_critico"`
	Warning  int           `json:"umbral_advertencia"`
	Interval time.Duration `json:"-"`
}

// IntervalSeconds reports the poll interval the way clients configured it.
func (s SettingsSnapshot) IntervalSeconds() int {
	return int(s.Interval / time.Second)
}

func NewSettings(critical, warning int, interval time.Duration) *Settings {
	return &Settings{critical: critical, warning: warning, interval: interval}
}

// Limits returns the thresholds for one rule evaluation.
func (s *Settings) Limits() Limits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Limits{Critical: s.critical, Warning: s.warning}
}

// PollInterval returns the current sweep interval.
func (s *Settings) PollInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// Snapshot returns all current values under one lock hold.
func (s *Settings) Snapshot() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SettingsSnapshot{Critical: s.critical, Warning: s.warning, Interval: s.interval}
}

// Update overwrites the provided fields; nil pointers keep the current
// value.
func (s *Settings) Update(critical, warning *int, interval *time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if critical != nil {
		s.critical = *critical
	}
	if warning != nil {
		s.warning = *warning
	}
	if interval != nil {
		s.interval = *interval
	}
}
