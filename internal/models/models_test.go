package models

import (
	"testing"
)

func TestMonitorID(t *testing.T) {
	tests := []struct {
		name       string
		timeFilter string
		want       string
	}{
		{
			name:       "with time filter",
			timeFilter: "08:00",
			want:       "medellin_monteria_2025-12-24_08:00",
		},
		{
			name:       "empty time filter maps to todos",
			timeFilter: "",
			want:       "medellin_monteria_2025-12-24_todos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonitorID("medellin", "monteria", "2025-12-24", tt.timeFilter)
			if got != tt.want {
				t.Errorf("MonitorID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRouteMonitor_Collision(t *testing.T) {
	a := NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "")
	b := NewRouteMonitor("medellin", "monteria", "2025-12-24", "", "brasilia")
	if a.ID != b.ID {
		t.Errorf("monitors differing only in operator filter must collide: %q vs %q", a.ID, b.ID)
	}
	if !a.Active {
		t.Error("new monitor must start active")
	}
	if a.LastChecked != nil {
		t.Error("new monitor must start with no last-checked time")
	}
}

func TestRouteMonitorValidate(t *testing.T) {
	tests := []struct {
		name    string
		monitor RouteMonitor
		wantErr bool
	}{
		{
			name:    "valid",
			monitor: NewRouteMonitor("medellin", "caucasia", "2025-12-24", "", ""),
			wantErr: false,
		},
		{
			name:    "empty origin",
			monitor: NewRouteMonitor("", "caucasia", "2025-12-24", "", ""),
			wantErr: true,
		},
		{
			name:    "blank destination",
			monitor: NewRouteMonitor("medellin", "   ", "2025-12-24", "", ""),
			wantErr: true,
		},
		{
			name:    "empty date",
			monitor: NewRouteMonitor("medellin", "caucasia", "", "", ""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.monitor.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
