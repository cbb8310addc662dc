package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists fetch and render history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			provider     TEXT,
			months       INTEGER,
			registry_key TEXT,
			companies    INTEGER,
			dates        INTEGER,
			duration_ms  INTEGER,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS render_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			months      INTEGER,
			ymin        REAL,
			ymax        REAL,
			companies   TEXT,
			points      INTEGER,
			outcome     TEXT,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_render_ts ON render_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, provider, months, registry_key, companies, dates, duration_ms, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Provider, evt.Months, evt.RegistryKey,
		evt.Companies, evt.Dates, evt.Duration.Milliseconds(), evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordRender(evt *RenderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO render_events
		(timestamp, months, ymin, ymax, companies, points, outcome, duration_ms, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Months, evt.YMin, evt.YMax,
		strings.Join(evt.Companies, ","), evt.Points, evt.Outcome,
		evt.Duration.Milliseconds(), evt.Err,
	)
	return err
}

// CountRenders returns the number of render events with the given outcome,
// or all of them when outcome is empty.
func (r *SQLiteRecorder) CountRenders(outcome string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	var err error
	if outcome == "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM render_events`).Scan(&n)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM render_events WHERE outcome = ?`, outcome).Scan(&n)
	}
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
