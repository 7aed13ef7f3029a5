package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
	"github.com/LUANPELO/buscador-buses-colombia/internal/redbus"
)

func (s *Server) handleAddMonitor(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "origen", "destino", "fecha")
	if !ok {
		return
	}
	origin, dest, date := params[0], params[1], params[2]
	timeFilter := r.URL.Query().Get("horario")
	operator := r.URL.Query().Get("empresa")

	// Reject undecipherable dates up front so a monitor that can never
	// produce a successful check is not registered.
	if _, err := redbus.FormatDate(date); err != nil {
		writeError(w, err)
		return
	}

	mon := s.registry.Add(models.NewRouteMonitor(origin, dest, date, timeFilter, operator))

	// First check runs inline. A provider hiccup here does not undo the
	// registration; the scheduler retries on the next sweep.
	if err := s.checker.Check(r.Context(), mon); err != nil {
		logger.Warn("Initial check for %s failed: %v", mon.ID, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"mensaje": "Ruta agregada al monitoreo",
		"monitor": map[string]interface{}{
			"id":                 mon.ID,
			"origen":             titleCase(origin),
			"destino":            titleCase(dest),
			"fecha":              date,
			"horario_especifico": timeFilter,
			"empresa_especifica": operator,
		},
		"configuracion": s.settingsPayload(),
	})
}

func (s *Server) handleListMonitors(w http.ResponseWriter, r *http.Request) {
	monitors := s.registry.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_rutas_monitoreadas": len(monitors),
		"rutas":                    monitors,
		"configuracion":            s.settingsPayload(),
	})
}

func (s *Server) handleStopMonitor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.registry.Deactivate(id); err != nil {
		writeDetail(w, http.StatusNotFound, "Ruta no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"mensaje": "Monitoreo detenido: " + id,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	mon, ok := s.registry.Get(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Ruta no encontrada")
		return
	}

	// Force a fresh check so the response reflects current availability.
	if err := s.checker.Check(r.Context(), mon); err != nil {
		logger.Warn("Status check for %s failed: %v", id, err)
	}
	if refreshed, ok := s.registry.Get(id); ok {
		mon = refreshed
	}

	all := s.alerts.ForRoute(mon.Origin, mon.Destination, mon.Date, 0)
	recent := all
	if len(recent) > 5 {
		recent = recent[:5]
	}

	var lastChecked interface{}
	if mon.LastChecked != nil {
		lastChecked = mon.LastChecked.Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"monitor": map[string]interface{}{
			"id":              mon.ID,
			"origen":          mon.Origin,
			"destino":         mon.Destination,
			"fecha":           mon.Date,
			"ultima_revision": lastChecked,
		},
		"total_alertas":     len(all),
		"alertas_recientes": recent,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("nivel")
	limit, err := optionalInt(r, "ultimas")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "ultimas inválido")
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	alerts := s.alerts.Query(level, n)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_alertas": len(alerts),
		"alertas":       alerts,
	})
}

func (s *Server) handleClearAlerts(w http.ResponseWriter, r *http.Request) {
	s.alerts.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"mensaje": "Alertas eliminadas",
	})
}

func (s *Server) handleConfigureAlerts(w http.ResponseWriter, r *http.Request) {
	critical, err := optionalInt(r, "umbral_critico")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "umbral_critico inválido")
		return
	}
	warning, err := optionalInt(r, "umbral_advertencia")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "umbral_advertencia inválido")
		return
	}
	intervalSec, err := optionalInt(r, "intervalo_revision")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "intervalo_revision inválido")
		return
	}

	var interval *time.Duration
	if intervalSec != nil {
		d := time.Duration(*intervalSec) * time.Second
		interval = &d
	}
	s.settings.Update(critical, warning, interval)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":               true,
		"mensaje":             "Configuración actualizada",
		"configuracion_actual": s.settingsPayload(),
	})
}
