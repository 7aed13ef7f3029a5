package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
)

// sweepFallbackDelay is slept after a failure of the sweep itself, outside
// any individual monitor check.
const sweepFallbackDelay = 60 * time.Second

// Scheduler runs the sweep-then-sleep loop over all active monitors. It is
// started once at process startup and never terminates on error; only
// context cancellation stops it.
type Scheduler struct {
	checker   *Checker
	registry  *Registry
	settings  *Settings
	ledger    *Ledger
	ledgerTTL time.Duration
}

// NewScheduler creates the polling loop. ledgerTTL of zero disables ledger
// pruning, which is the default resource model.
func NewScheduler(checker *Checker, registry *Registry, settings *Settings,
	ledger *Ledger, ledgerTTL time.Duration) *Scheduler {
	return &Scheduler{
		checker:   checker,
		registry:  registry,
		settings:  settings,
		ledger:    ledger,
		ledgerTTL: ledgerTTL,
	}
}

// Run loops until ctx is cancelled. The poll interval is re-read from the
// settings at the start of every sleep, so administrative changes take
// effect on the next cycle.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("🚀 Route monitoring started (interval: %v)", s.settings.PollInterval())

	for {
		delay := s.settings.PollInterval()
		if err := s.Sweep(ctx); err != nil {
			logger.Error("Monitor sweep failed: %v", err)
			delay = sweepFallbackDelay
		}

		select {
		case <-ctx.Done():
			logger.Info("Route monitoring stopped")
			return
		case <-time.After(delay):
		}
	}
}

// Sweep checks every active monitor once, iterating a registry snapshot so
// concurrent watch additions or deactivations cannot corrupt the pass. A
// failed check is logged and skipped; the next cycle is its retry. A panic
// anywhere in the pass becomes the sweep error that triggers the fallback
// delay.
func (s *Scheduler) Sweep(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sweep panicked: %v", r)
		}
	}()

	var checked, failed int
	for _, mon := range s.registry.List() {
		if !mon.Active {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if checkErr := s.checker.Check(ctx, mon); checkErr != nil {
			failed++
			logger.Warn("Check failed for route %s: %v", mon.ID, checkErr)
			continue
		}
		checked++
	}
	logger.Debug("Sweep complete: %d checked, %d failed", checked, failed)

	if s.ledgerTTL > 0 {
		if pruned := s.ledger.PruneOlderThan(s.ledgerTTL); pruned > 0 {
			logger.Debug("Pruned %d stale ledger entries", pruned)
		}
	}
	return nil
}
