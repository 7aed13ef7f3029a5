package cities

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolve_StaticTable(t *testing.T) {
	r := NewResolver("http://unused.invalid", time.Second)

	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{name: "exact slug", input: "medellin", wantID: "195160"},
		{name: "uppercase", input: "MEDELLIN", wantID: "195160"},
		{name: "surrounding whitespace", input: "  monteria  ", wantID: "195164"},
		{name: "two-word slug", input: "santa marta", wantID: "195189"},
		{name: "joined variant", input: "santamarta", wantID: "195189"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, err := r.Resolve(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.input, err)
			}
			if city.ID != tt.wantID {
				t.Errorf("Resolve(%q).ID = %s, want %s", tt.input, city.ID, tt.wantID)
			}
		})
	}
}

func TestResolve_RemoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "turbo" {
			t.Errorf("search param = %q, want %q", got, "turbo")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"docs":[
			{"ID":12345,"Name":"Turbo Terminal","locationType":"BUS_STATION"},
			{"ID":99887,"Name":"Turbo (Ant) (Todos)","locationType":"CITY"}
		]}}`))
	}))
	defer srv.Close()

	r := NewResolver(srv.URL, time.Second)
	city, err := r.Resolve(context.Background(), "turbo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if city.ID != "99887" {
		t.Errorf("expected the CITY-typed doc to win, got ID %s", city.ID)
	}
	if city.Name != "Turbo (Ant) (Todos)" {
		t.Errorf("unexpected name %q", city.Name)
	}
}

func TestResolve_RemoteFallback_FirstDocWhenNoCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"docs":[
			{"ID":555,"Name":"Somewhere Station","locationType":"BUS_STATION"}
		]}}`))
	}))
	defer srv.Close()

	r := NewResolver(srv.URL, time.Second)
	city, err := r.Resolve(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if city.ID != "555" {
		t.Errorf("expected first doc fallback, got ID %s", city.ID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"docs":[]}}`))
	}))
	defer srv.Close()

	r := NewResolver(srv.URL, time.Second)
	_, err := r.Resolve(context.Background(), "atlantis")
	if !errors.Is(err, ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestResolve_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewResolver(srv.URL, time.Second)
	_, err := r.Resolve(context.Background(), "atlantis")
	if !errors.Is(err, ErrCityNotFound) {
		t.Errorf("remote failure must surface as ErrCityNotFound, got %v", err)
	}
}

func TestCatalogue(t *testing.T) {
	entries := Catalogue()
	if len(entries) != len(catalogue) {
		t.Fatalf("got %d entries, want %d", len(entries), len(catalogue))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name > entries[i].Name {
			t.Fatalf("catalogue not sorted: %q before %q", entries[i-1].Name, entries[i].Name)
		}
	}
	for _, e := range entries {
		if _, ok := staticCities[e.Slug]; !ok {
			t.Errorf("catalogue slug %q missing from static table", e.Slug)
		}
	}
}

func TestGroupByDepartment(t *testing.T) {
	groups := GroupByDepartment(Catalogue())
	if len(groups["Antioquia"]) != 16 {
		t.Errorf("Antioquia has %d cities, want 16", len(groups["Antioquia"]))
	}
	if len(groups["Sucre"]) != 5 {
		t.Errorf("Sucre has %d cities, want 5", len(groups["Sucre"]))
	}
}
