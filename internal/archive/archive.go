// Package archive provides an optional SQLite-backed mirror of emitted
// alerts. The in-memory alert log stays authoritative; the archive only
// exists so alert history survives a restart for forensics.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

// Archive wraps a SQLite database holding alert history.
type Archive struct {
	db *sql.DB
}

// New opens or creates the SQLite database at dbPath. An empty dbPath
// defaults to $TMPDIR/buscador-buses/alerts.db.
func New(dbPath string) (*Archive, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "buscador-buses", "alerts.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	a := &Archive{db: db}
	if err := a.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return a, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createTables() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS alerts (
		id              TEXT PRIMARY KEY,
		kind            TEXT NOT NULL,
		level           TEXT NOT NULL,
		message         TEXT NOT NULL,
		origin          TEXT NOT NULL,
		destination     TEXT NOT NULL,
		travel_date     TEXT NOT NULL,
		operator        TEXT,
		departure_time  TEXT,
		seats_available INTEGER NOT NULL,
		seats_total     INTEGER NOT NULL,
		price           REAL NOT NULL,
		created_at      INTEGER NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = a.db.Exec(`CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at)`)
	return err
}

// SaveAlert inserts one alert record.
func (a *Archive) SaveAlert(alert models.Alert) error {
	_, err := a.db.Exec(`
		INSERT INTO alerts
			(id, kind, level, message, origin, destination, travel_date,
			 operator, departure_time, seats_available, seats_total, price, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		alert.ID, string(alert.Kind), string(alert.Level), alert.Message,
		alert.Origin, alert.Destination, alert.Date,
		alert.Operator, alert.DepartureTime,
		alert.SeatsAvailable, alert.SeatsTotal, alert.Price,
		alert.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// Recent returns the newest archived alerts, capped at limit.
func (a *Archive) Recent(limit int) ([]models.Alert, error) {
	rows, err := a.db.Query(`
		SELECT id, kind, level, message, origin, destination, travel_date,
		       operator, departure_time, seats_available, seats_total, price, created_at
		FROM alerts ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var alert models.Alert
		var kind, level string
		var createdAtNano int64

		err := rows.Scan(
			&alert.ID, &kind, &level, &alert.Message,
			&alert.Origin, &alert.Destination, &alert.Date,
			&alert.Operator, &alert.DepartureTime,
			&alert.SeatsAvailable, &alert.SeatsTotal, &alert.Price,
			&createdAtNano,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alert.Kind = models.AlertKind(kind)
		alert.Level = models.AlertLevel(level)
		alert.CreatedAt = time.Unix(0, createdAtNano)
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}
