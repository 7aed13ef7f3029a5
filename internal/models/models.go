// Package models defines the core domain entities: departures, route
// monitors, and availability alerts.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Departure is one scheduled bus service returned by the search provider,
// normalized from a redBus inventory entry.
type Departure struct {
	Operator       string  `json:"empresa"`
	BusType        string  `json:"tipo_bus"`
	Service        string  `json:"servicio"`
	DepartureTime  string  `json:"hora_salida"` // HH:MM:SS
	ArrivalTime    string  `json:"hora_llegada"`
	DepartureDate  string  `json:"fecha_salida"`
	ArrivalDate    string  `json:"fecha_llegada"`
	DurationMin    int     `json:"duracion_minutos"`
	DurationHours  float64 `json:"duracion_horas"`
	Fare           float64 `json:"precio"`
	ConvenienceFee float64 `json:"tarifa_servicio"`
	TotalPrice     float64 `json:"precio_total"`
	Currency       string  `json:"moneda"`
	SeatsAvailable int     `json:"asientos_disponibles"`
	SeatsTotal     int     `json:"asientos_totales"`
	WindowSeats    int     `json:"asientos_ventana"`
	BoardingPoint  string  `json:"punto_embarque"`
	DroppingPoint  string  `json:"punto_desembarque"`
	Rating         float64 `json:"rating"`
	NumReviews     string  `json:"num_reviews"`
	IsAC           bool    `json:"es_ac"`
	IsSleeper      bool    `json:"es_cama"`
	HasTracking    bool    `json:"tiene_tracking"`
	SoldOut        bool    `json:"agotado"`
}

// RouteMonitor is one user-requested watch over an (origin, destination,
// date) route, optionally narrowed to a departure time prefix and an
// operator name.
type RouteMonitor struct {
	ID             string     `json:"id"`
	Origin         string     `json:"origen"`
	Destination    string     `json:"destino"`
	Date           string     `json:"fecha"`
	TimeFilter     string     `json:"horario_especifico,omitempty"`
	OperatorFilter string     `json:"empresa_especifica,omitempty"`
	Active         bool       `json:"activo"`
	LastChecked    *time.Time `json:"ultima_revision,omitempty"`
}

// NewRouteMonitor builds an active monitor with its derived identity.
// Two monitors created with identical fields share the same ID and collide
// in the registry.
func NewRouteMonitor(origin, destination, date, timeFilter, operatorFilter string) RouteMonitor {
	return RouteMonitor{
		ID:             MonitorID(origin, destination, date, timeFilter),
		Origin:         origin,
		Destination:    destination,
		Date:           date,
		TimeFilter:     timeFilter,
		OperatorFilter: operatorFilter,
		Active:         true,
	}
}

// MonitorID derives the registry key for a watch. An empty time filter maps
// to the literal segment "todos".
func MonitorID(origin, destination, date, timeFilter string) string {
	if timeFilter == "" {
		timeFilter = "todos"
	}
	return fmt.Sprintf("%s_%s_%s_%s", origin, destination, date, timeFilter)
}

// Validate checks monitor field constraints.
func (m *RouteMonitor) Validate() error {
	if strings.TrimSpace(m.Origin) == "" {
		return errors.New("origin city must not be empty")
	}
	if strings.TrimSpace(m.Destination) == "" {
		return errors.New("destination city must not be empty")
	}
	if strings.TrimSpace(m.Date) == "" {
		return errors.New("travel date must not be empty")
	}
	return nil
}

// AlertKind classifies which availability boundary a departure crossed.
type AlertKind string

// AlertLevel is the severity attached to an alert kind.
type AlertLevel string

// Wire values kept from the original service for client compatibility.
const (
	KindSoldOut  AlertKind = "AGOTADO"
	KindCritical AlertKind = "CRITICO"
	KindWarning  AlertKind = "ADVERTENCIA"

	LevelCritical AlertLevel = "CRITICO"
	LevelHigh     AlertLevel = "ALTO"
	LevelMedium   AlertLevel = "MEDIO"
)

// Alert records one downward band transition for one scheduled departure.
// Immutable once created.
type Alert struct {
	ID             string     `json:"id"`
	Kind           AlertKind  `json:"tipo"`
	Level          AlertLevel `json:"nivel"`
	Message        string     `json:"mensaje"`
	Origin         string     `json:"origen"`
	Destination    string     `json:"destino"`
	Date           string     `json:"fecha"`
	Operator       string     `json:"empresa"`
	DepartureTime  string     `json:"hora_salida"`
	SeatsAvailable int        `json:"asientos_disponibles"`
	SeatsTotal     int        `json:"asientos_totales"`
	Price          float64    `json:"precio"`
	CreatedAt      time.Time  `json:"timestamp"`
}
