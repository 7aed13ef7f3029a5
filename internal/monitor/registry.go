package monitor

import (
	"sync"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

// Registry is the process-wide collection of watched routes. Monitors are
// never physically removed; deactivation only detaches them from future
// sweeps so historical alerts keep a valid route reference.
type Registry struct {
	mu       sync.RWMutex
	monitors map[string]*models.RouteMonitor
}

func NewRegistry() *Registry {
	return &Registry{monitors: make(map[string]*models.RouteMonitor)}
}

// Add upserts a monitor by its derived ID. Creating a second watch with
// identical route fields silently overwrites the first one's filters; the
// prior last-checked time is preserved so the overwrite does not look like
// a never-checked route.
func (r *Registry) Add(mon models.RouteMonitor) models.RouteMonitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.monitors[mon.ID]; ok && mon.LastChecked == nil {
		mon.LastChecked = existing.LastChecked
	}
	stored := mon
	r.monitors[mon.ID] = &stored
	return mon
}

// Get returns a copy of the monitor with the given ID.
func (r *Registry) Get(id string) (models.RouteMonitor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mon, ok := r.monitors[id]
	if !ok {
		return models.RouteMonitor{}, false
	}
	return *mon, true
}

// List returns a snapshot of all monitors. Callers iterate the snapshot, so
// registry mutations during a sweep cannot corrupt the pass.
func (r *Registry) List() []models.RouteMonitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.RouteMonitor, 0, len(r.monitors))
	for _, mon := range r.monitors {
		out = append(out, *mon)
	}
	return out
}

// Deactivate flips a monitor's active flag off, removing it from future
// sweeps without deleting it.
func (r *Registry) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mon, ok := r.monitors[id]
	if !ok {
		return ErrMonitorNotFound
	}
	mon.Active = false
	return nil
}

// SetLastChecked stamps the time of the monitor's most recent check.
func (r *Registry) SetLastChecked(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mon, ok := r.monitors[id]; ok {
		mon.LastChecked = &at
	}
}

// Len reports the number of registered monitors, active or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.monitors)
}
