package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

func TestRegistryAddAndGet(t *testing.T) {
	r := NewRegistry()
	mon := models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "")
	r.Add(mon)

	got, ok := r.Get(mon.ID)
	if !ok {
		t.Fatal("monitor not found after Add")
	}
	if got.Origin != "medellin" || !got.Active {
		t.Errorf("unexpected monitor %+v", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryAdd_UpsertPreservesLastChecked(t *testing.T) {
	r := NewRegistry()
	first := models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "")
	r.Add(first)

	checked := time.Now().Add(-time.Minute)
	r.SetLastChecked(first.ID, checked)

	// Same route fields, new operator filter: collides and overwrites.
	second := models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "brasilia")
	r.Add(second)

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after colliding add", r.Len())
	}
	got, _ := r.Get(first.ID)
	if got.OperatorFilter != "brasilia" {
		t.Errorf("filters not overwritten: %+v", got)
	}
	if got.LastChecked == nil || !got.LastChecked.Equal(checked) {
		t.Errorf("LastChecked reset by upsert: %v, want %v", got.LastChecked, checked)
	}
}

func TestRegistryList_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Add(models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", ""))
	r.Add(models.NewRouteMonitor("medellin", "cartagena", "2025-12-25", "", ""))

	snapshot := r.List()
	if len(snapshot) != 2 {
		t.Fatalf("List returned %d monitors, want 2", len(snapshot))
	}

	// Mutating the registry must not affect an already-taken snapshot.
	r.Add(models.NewRouteMonitor("bogota", "medellin", "2025-12-26", "", ""))
	if len(snapshot) != 2 {
		t.Errorf("snapshot grew after registry mutation")
	}

	// Mutating snapshot entries must not leak into the registry.
	snapshot[0].Active = false
	for _, mon := range r.List() {
		if !mon.Active {
			t.Errorf("snapshot mutation leaked into registry: %+v", mon)
		}
	}
}

func TestRegistryDeactivate(t *testing.T) {
	r := NewRegistry()
	mon := models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "")
	r.Add(mon)

	if err := r.Deactivate(mon.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	got, ok := r.Get(mon.ID)
	if !ok {
		t.Fatal("deactivated monitor must remain in the registry")
	}
	if got.Active {
		t.Error("monitor still active after Deactivate")
	}
}

func TestRegistryDeactivate_NotFound(t *testing.T) {
	r := NewRegistry()
	err := r.Deactivate("nope")
	if !errors.Is(err, ErrMonitorNotFound) {
		t.Errorf("expected ErrMonitorNotFound, got %v", err)
	}
}

func TestRegistrySetLastChecked(t *testing.T) {
	r := NewRegistry()
	mon := models.NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "")
	r.Add(mon)

	at := time.Now()
	r.SetLastChecked(mon.ID, at)

	got, _ := r.Get(mon.ID)
	if got.LastChecked == nil || !got.LastChecked.Equal(at) {
		t.Errorf("LastChecked = %v, want %v", got.LastChecked, at)
	}

	// Unknown IDs are a no-op.
	r.SetLastChecked("nope", at)
}
