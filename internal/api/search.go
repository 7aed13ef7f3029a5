package api

import (
	"context"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/LUANPELO/buscador-buses-colombia/internal/cities"
	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
	"github.com/LUANPELO/buscador-buses-colombia/internal/redbus"
)

// cityRef echoes a resolved endpoint of the searched route.
type cityRef struct {
	City     string `json:"ciudad"`
	ID       string `json:"id"`
	FullName string `json:"nombre_completo"`
}

// searchResult bundles one resolved round trip to the provider.
type searchResult struct {
	origin     cities.City
	dest       cities.City
	departures []models.Departure
}

// runSearch normalizes the travel date, resolves both cities and queries
// the provider.
func (s *Server) runSearch(ctx context.Context, origin, dest, date string) (searchResult, error) {
	doj, err := redbus.FormatDate(date)
	if err != nil {
		return searchResult{}, err
	}
	from, err := s.resolver.Resolve(ctx, origin)
	if err != nil {
		return searchResult{}, err
	}
	to, err := s.resolver.Resolve(ctx, dest)
	if err != nil {
		return searchResult{}, err
	}
	departures, err := s.provider.Search(ctx, from, to, doj)
	if err != nil {
		return searchResult{}, err
	}
	return searchResult{origin: from, dest: to, departures: departures}, nil
}

func cityRefOf(requested string, resolved cities.City) cityRef {
	return cityRef{City: titleCase(requested), ID: resolved.ID, FullName: resolved.Name}
}

func sortByDeparture(departures []models.Departure) {
	sort.Slice(departures, func(i, j int) bool {
		return departures[i].DepartureTime < departures[j].DepartureTime
	})
}

func operatorNames(departures []models.Departure) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, d := range departures {
		if _, ok := seen[d.Operator]; !ok {
			seen[d.Operator] = struct{}{}
			names = append(names, d.Operator)
		}
	}
	sort.Strings(names)
	return names
}

func filterByOperator(departures []models.Departure, operator string) []models.Departure {
	needle := strings.ToLower(operator)
	out := make([]models.Departure, 0, len(departures))
	for _, d := range departures {
		if strings.Contains(strings.ToLower(d.Operator), needle) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "origen", "destino", "fecha")
	if !ok {
		return
	}
	origin, dest, date := params[0], params[1], params[2]

	result, err := s.runSearch(r.Context(), origin, dest, date)
	if err != nil {
		writeError(w, err)
		return
	}

	departures := result.departures
	if operator := r.URL.Query().Get("empresa"); operator != "" {
		departures = filterByOperator(departures, operator)
	}
	sortByDeparture(departures)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":                 true,
		"origen":                cityRefOf(origin, result.origin),
		"destino":               cityRefOf(dest, result.dest),
		"fecha":                 date,
		"total_buses":           len(departures),
		"empresas_disponibles":  operatorNames(departures),
		"horarios":              departures,
	})
}

func (s *Server) handleSearchOchoa(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "origen", "destino", "fecha")
	if !ok {
		return
	}
	origin, dest, date := params[0], params[1], params[2]

	result, err := s.runSearch(r.Context(), origin, dest, date)
	if err != nil {
		writeError(w, err)
		return
	}

	departures := filterByOperator(result.departures, "ochoa")
	sortByDeparture(departures)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":       true,
		"origen":      cityRefOf(origin, result.origin),
		"destino":     cityRefOf(dest, result.dest),
		"fecha":       date,
		"empresa":     "Rápido Ochoa",
		"total_buses": len(departures),
		"horarios":    departures,
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "origen", "destino", "fecha", "hora_salida")
	if !ok {
		return
	}
	origin, dest, date, departureTime := params[0], params[1], params[2], params[3]

	// Accept HH:MM as shorthand for HH:MM:00.
	if strings.Count(departureTime, ":") == 1 {
		departureTime += ":00"
	}

	result, err := s.runSearch(r.Context(), origin, dest, date)
	if err != nil {
		writeError(w, err)
		return
	}

	for _, d := range result.departures {
		if d.DepartureTime != departureTime {
			continue
		}
		state := "AGOTADO"
		switch {
		case d.SeatsAvailable > 10:
			state = "DISPONIBLE"
		case d.SeatsAvailable > 0:
			state = "POCOS ASIENTOS"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"disponible":           d.SeatsAvailable > 0,
			"asientos_disponibles": d.SeatsAvailable,
			"asientos_totales":     d.SeatsTotal,
			"precio":               d.TotalPrice,
			"estado":               state,
			"bus":                  d,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"disponible": false,
		"mensaje":    "Bus no encontrado",
	})
}

func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "origen", "destino", "fecha")
	if !ok {
		return
	}
	origin, dest, date := params[0], params[1], params[2]

	priceMin, err := optionalInt(r, "precio_min")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "precio_min inválido")
		return
	}
	priceMax, err := optionalInt(r, "precio_max")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "precio_max inválido")
		return
	}
	seatsMin, err := optionalInt(r, "asientos_min")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "asientos_min inválido")
		return
	}
	ratingMin, err := optionalFloat(r, "rating_min")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "rating_min inválido")
		return
	}
	operator := r.URL.Query().Get("empresa")
	timeMin := r.URL.Query().Get("hora_min")
	timeMax := r.URL.Query().Get("hora_max")
	onlyAC := optionalBool(r, "solo_ac")
	onlySleeper := optionalBool(r, "solo_cama")
	sortBy := r.URL.Query().Get("ordenar_por")
	if sortBy == "" {
		sortBy = "hora"
	}

	result, err := s.runSearch(r.Context(), origin, dest, date)
	if err != nil {
		writeError(w, err)
		return
	}

	departures := result.departures
	if operator != "" {
		departures = filterByOperator(departures, operator)
	}
	departures = filterDepartures(departures, func(d models.Departure) bool {
		if priceMin != nil && d.TotalPrice < float64(*priceMin) {
			return false
		}
		if priceMax != nil && d.TotalPrice > float64(*priceMax) {
			return false
		}
		if timeMin != "" && d.DepartureTime < timeMin {
			return false
		}
		if timeMax != "" && d.DepartureTime > timeMax {
			return false
		}
		if seatsMin != nil && d.SeatsAvailable < *seatsMin {
			return false
		}
		if onlyAC && !d.IsAC {
			return false
		}
		if onlySleeper && !d.IsSleeper {
			return false
		}
		if ratingMin != nil && d.Rating < *ratingMin {
			return false
		}
		return true
	})

	switch sortBy {
	case "precio":
		sort.Slice(departures, func(i, j int) bool { return departures[i].TotalPrice < departures[j].TotalPrice })
	case "rating":
		sort.Slice(departures, func(i, j int) bool { return departures[i].Rating > departures[j].Rating })
	case "asientos":
		sort.Slice(departures, func(i, j int) bool { return departures[i].SeatsAvailable > departures[j].SeatsAvailable })
	default:
		sortByDeparture(departures)
	}

	var avgPrice, minPrice, maxPrice float64
	if len(departures) > 0 {
		minPrice = departures[0].TotalPrice
		maxPrice = departures[0].TotalPrice
		var sum float64
		for _, d := range departures {
			sum += d.TotalPrice
			if d.TotalPrice < minPrice {
				minPrice = d.TotalPrice
			}
			if d.TotalPrice > maxPrice {
				maxPrice = d.TotalPrice
			}
		}
		avgPrice = math.Round(sum/float64(len(departures))*100) / 100
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"origen":  cityRefOf(origin, result.origin),
		"destino": cityRefOf(dest, result.dest),
		"fecha":   date,
		"filtros_aplicados": map[string]interface{}{
			"empresa":      operator,
			"precio_min":   priceMin,
			"precio_max":   priceMax,
			"hora_min":     timeMin,
			"hora_max":     timeMax,
			"asientos_min": seatsMin,
			"solo_ac":      onlyAC,
			"solo_cama":    onlySleeper,
			"rating_min":   ratingMin,
			"ordenar_por":  sortBy,
		},
		"estadisticas": map[string]interface{}{
			"total_resultados":     len(departures),
			"empresas_disponibles": operatorNames(departures),
			"precio_promedio":      avgPrice,
			"precio_mas_barato":    minPrice,
			"precio_mas_caro":      maxPrice,
		},
		"horarios": departures,
	})
}

func filterDepartures(departures []models.Departure, keep func(models.Departure) bool) []models.Departure {
	out := make([]models.Departure, 0, len(departures))
	for _, d := range departures {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
