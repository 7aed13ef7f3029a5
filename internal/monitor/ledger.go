package monitor

import (
	"fmt"
	"sync"
	"time"
)

// Fingerprint is the composite key identifying one scheduled departure
// within one watched route across polling cycles. Price and bus type may
// change between cycles; the key stays stable.
func Fingerprint(monitorID, departureTime, operator string) string {
	return fmt.Sprintf("%s_%s_%s", monitorID, departureTime, operator)
}

// LedgerEntry is the last-observed availability for one fingerprint.
type LedgerEntry struct {
	Seats      int       `json:"asientos"`
	ObservedAt time.Time `json:"timestamp"`
}

// Ledger stores the last-observed seat count per departure fingerprint.
// Entries are overwritten on every observation and never evicted unless the
// optional age-based pruning is enabled.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]LedgerEntry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]LedgerEntry)}
}

// Swap records a fresh observation and returns the previously observed seat
// count, or nil on the first observation. Read and write happen under one
// lock hold so concurrent checks of the same fingerprint cannot interleave.
func (l *Ledger) Swap(key string, seats int) *int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var prev *int
	if entry, ok := l.entries[key]; ok {
		s := entry.Seats
		prev = &s
	}
	l.entries[key] = LedgerEntry{Seats: seats, ObservedAt: time.Now()}
	return prev
}

// Get returns the current entry for a fingerprint.
func (l *Ledger) Get(key string) (LedgerEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[key]
	return entry, ok
}

// Len reports how many fingerprints have been observed.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// PruneOlderThan removes entries not observed within the given age and
// returns how many were dropped. Optional: the scheduler only calls this
// when a ledger TTL is configured.
func (l *Ledger) PruneOlderThan(age time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-age)
	var pruned int
	for key, entry := range l.entries {
		if entry.ObservedAt.Before(cutoff) {
			delete(l.entries, key)
			pruned++
		}
	}
	return pruned
}
