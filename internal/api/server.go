// Package api exposes the HTTP layer: public search endpoints and the
// monitoring administration endpoints. The wire format keeps the Spanish
// field names clients already depend on.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gorilla/mux"

	"github.com/LUANPELO/buscador-buses-colombia/internal/cities"
	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/monitor"
	"github.com/LUANPELO/buscador-buses-colombia/internal/redbus"
)

// Server routes HTTP requests to the search provider and the monitoring
// stores.
type Server struct {
	router   *mux.Router
	resolver monitor.CityResolver
	provider monitor.SearchClient
	checker  *monitor.Checker
	registry *monitor.Registry
	alerts   *monitor.AlertLog
	settings *monitor.Settings
}

// NewServer builds the API server and registers all routes.
func NewServer(resolver monitor.CityResolver, provider monitor.SearchClient,
	checker *monitor.Checker, registry *monitor.Registry,
	alerts *monitor.AlertLog, settings *monitor.Settings) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		resolver: resolver,
		provider: provider,
		checker:  checker,
		registry: registry,
		alerts:   alerts,
		settings: settings,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)

	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/ciudades", s.handleCities).Methods(http.MethodGet)
	s.router.HandleFunc("/buscar", s.handleSearch).Methods(http.MethodGet)
	s.router.HandleFunc("/buscar-rapido-ochoa", s.handleSearchOchoa).Methods(http.MethodGet)
	s.router.HandleFunc("/buscar-avanzado", s.handleAdvancedSearch).Methods(http.MethodGet)
	s.router.HandleFunc("/verificar-disponibilidad", s.handleAvailability).Methods(http.MethodGet)

	s.router.HandleFunc("/monitorear", s.handleAddMonitor).Methods(http.MethodPost)
	s.router.HandleFunc("/monitorear/{id}", s.handleStopMonitor).Methods(http.MethodDelete)
	s.router.HandleFunc("/monitoreando", s.handleListMonitors).Methods(http.MethodGet)
	s.router.HandleFunc("/estado/{id}", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/alertas", s.handleAlerts).Methods(http.MethodGet)
	s.router.HandleFunc("/alertas", s.handleClearAlerts).Methods(http.MethodDelete)
	s.router.HandleFunc("/configurar-alertas", s.handleConfigureAlerts).Methods(http.MethodPut)
}

// Router returns the configured handler for mounting on an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"nombre":      "🚌 Buscador de Buses Colombia - Rápido Ochoa",
		"version":     "1.0.0",
		"descripcion": "API para buscar horarios de buses con sistema de alertas",
		"autor":       "Luis - Rápido Ochoa",
		"endpoints": map[string]string{
			"GET /":                          "Info API",
			"GET /ciudades":                  "Ciudades Rápido Ochoa",
			"GET /buscar":                    "Todas empresas (web)",
			"GET /buscar-rapido-ochoa":       "Solo Ochoa (app)",
			"GET /buscar-avanzado":           "Filtros avanzados",
			"GET /verificar-disponibilidad":  "Tiempo real",
			"POST /monitorear":               "Monitorear",
			"GET /alertas":                   "Alertas",
		},
	})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	entries := cities.Catalogue()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":            len(entries),
		"ciudades":         entries,
		"por_departamento": cities.GroupByDepartment(entries),
	})
}

// settingsPayload is the Spanish wire shape of the alert configuration.
type settingsPayload struct {
	Critical int `json:"umbral_critico"`
	Warning  int `json:"umbral_advertencia"`
	Interval int `json:"intervalo_revision"`
}

func (s *Server) settingsPayload() settingsPayload {
	snap := s.settings.Snapshot()
	return settingsPayload{
		Critical: snap.Critical,
		Warning:  snap.Warning,
		Interval: snap.IntervalSeconds(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

// writeError maps a pipeline error to an HTTP status and the
// {"detail": ...} error shape.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, redbus.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, cities.ErrCityNotFound), errors.Is(err, monitor.ErrMonitorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, redbus.ErrProviderUnavailable):
		status = http.StatusBadGateway
	}
	writeDetail(w, status, err.Error())
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// requireParams extracts the given query parameters, writing a 400 response
// and returning false if any is missing or blank.
func requireParams(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	values := make([]string, 0, len(names))
	for _, name := range names {
		v := strings.TrimSpace(r.URL.Query().Get(name))
		if v == "" {
			writeDetail(w, http.StatusBadRequest, "parámetro requerido: "+name)
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalBool(r *http.Request, name string) bool {
	raw := strings.ToLower(r.URL.Query().Get(name))
	return raw == "true" || raw == "1"
}

// titleCase uppercases the first letter of each space-separated word, the
// way city names are echoed back in responses.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
