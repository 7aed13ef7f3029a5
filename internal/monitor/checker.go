package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/cities"
	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
	"github.com/LUANPELO/buscador-buses-colombia/internal/redbus"
)

// CityResolver maps a free-text city name to a provider location.
type CityResolver interface {
	Resolve(ctx context.Context, name string) (cities.City, error)
}

// SearchClient fetches scheduled departures for a resolved route.
type SearchClient interface {
	Search(ctx context.Context, from, to cities.City, doj string) ([]models.Departure, error)
}

// Notifier pushes freshly emitted alerts to an external channel.
type Notifier interface {
	Notify(alerts []models.Alert) error
}

// Checker runs one availability pass for a watched route: fetch, filter,
// evaluate each departure against its previous observation, record alerts.
type Checker struct {
	resolver CityResolver
	provider SearchClient
	ledger   *Ledger
	registry *Registry
	alerts   *AlertLog
	settings *Settings
	notifier Notifier
}

// NewChecker wires the check pipeline. notifier may be nil.
func NewChecker(resolver CityResolver, provider SearchClient, ledger *Ledger,
	registry *Registry, alerts *AlertLog, settings *Settings, notifier Notifier) *Checker {
	return &Checker{
		resolver: resolver,
		provider: provider,
		ledger:   ledger,
		registry: registry,
		alerts:   alerts,
		settings: settings,
		notifier: notifier,
	}
}

// Check queries current availability for the monitor's route and emits an
// alert for every departure that crossed a band boundary since the last
// observation. The ledger is updated for every departure whether or not an
// alert fired. Errors abort this monitor's check only; the caller decides
// whether to surface or swallow them.
func (c *Checker) Check(ctx context.Context, mon models.RouteMonitor) error {
	doj, err := redbus.FormatDate(mon.Date)
	if err != nil {
		return err
	}

	from, err := c.resolver.Resolve(ctx, mon.Origin)
	if err != nil {
		return err
	}
	to, err := c.resolver.Resolve(ctx, mon.Destination)
	if err != nil {
		return err
	}

	departures, err := c.provider.Search(ctx, from, to, doj)
	if err != nil {
		return err
	}

	departures = filterDepartures(departures, mon)

	limits := c.settings.Limits()
	var emitted []models.Alert
	for _, dep := range departures {
		key := Fingerprint(mon.ID, dep.DepartureTime, dep.Operator)
		prev := c.ledger.Swap(key, dep.SeatsAvailable)
		if alert := Evaluate(prev, dep, mon, limits); alert != nil {
			c.alerts.Append(*alert)
			emitted = append(emitted, *alert)
			logger.Info("🔔 ALERTA: %s", alert.Message)
		}
	}

	c.registry.SetLastChecked(mon.ID, time.Now())

	if len(emitted) > 0 && c.notifier != nil {
		if err := c.notifier.Notify(emitted); err != nil {
			logger.Warn("Failed to notify %d alert(s) for route %s: %v",
				len(emitted), mon.ID, err)
		}
	}

	return nil
}

// filterDepartures applies the monitor's optional operator substring filter
// (case-insensitive) and departure-time prefix filter.
func filterDepartures(departures []models.Departure, mon models.RouteMonitor) []models.Departure {
	if mon.OperatorFilter == "" && mon.TimeFilter == "" {
		return departures
	}

	operator := strings.ToLower(mon.OperatorFilter)
	filtered := make([]models.Departure, 0, len(departures))
	for _, dep := range departures {
		if operator != "" && !strings.Contains(strings.ToLower(dep.Operator), operator) {
			continue
		}
		if mon.TimeFilter != "" && !strings.HasPrefix(dep.DepartureTime, mon.TimeFilter) {
			continue
		}
		filtered = append(filtered, dep)
	}
	return filtered
}
