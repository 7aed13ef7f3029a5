package archive

import (
	"fmt"
	"testing"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func archivedAlert(i int) models.Alert {
	return models.Alert{
		ID:             fmt.Sprintf("alert-%d", i),
		Kind:           models.KindCritical,
		Level:          models.LevelHigh,
		Message:        fmt.Sprintf("⚠️ QUEDAN SOLO %d PUESTOS: Rapido Ochoa - 06:00:00", i),
		Origin:         "medellin",
		Destination:    "monteria",
		Date:           "2025-12-24",
		Operator:       "Rapido Ochoa",
		DepartureTime:  "06:00:00",
		SeatsAvailable: i,
		SeatsTotal:     40,
		Price:          100000,
		CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
	}
}

func TestArchive_SaveAndRecent(t *testing.T) {
	a := newTestArchive(t)

	for i := 0; i < 5; i++ {
		if err := a.SaveAlert(archivedAlert(i)); err != nil {
			t.Fatalf("SaveAlert: %v", err)
		}
	}

	got, err := a.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d alerts, want 3", len(got))
	}
	if got[0].ID != "alert-4" {
		t.Errorf("first result = %s, want alert-4 (newest)", got[0].ID)
	}
	if got[0].Kind != models.KindCritical || got[0].Level != models.LevelHigh {
		t.Errorf("kind/level not round-tripped: %+v", got[0])
	}
	if got[0].SeatsTotal != 40 || got[0].Price != 100000 {
		t.Errorf("numeric fields not round-tripped: %+v", got[0])
	}
}

func TestArchive_DuplicateID(t *testing.T) {
	a := newTestArchive(t)

	alert := archivedAlert(1)
	if err := a.SaveAlert(alert); err != nil {
		t.Fatalf("SaveAlert: %v", err)
	}
	if err := a.SaveAlert(alert); err == nil {
		t.Error("expected error inserting duplicate alert ID")
	}
}

func TestArchive_RecentEmpty(t *testing.T) {
	a := newTestArchive(t)

	got, err := a.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d alerts from empty archive", len(got))
	}
}
