package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan results to a SQLite database.
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

	// WAL mode so summary queries can run while a scan is writing.
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
		`CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			event_date TEXT NOT NULL,
			kind       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_symbol ON events(symbol)`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind)`,

		`CREATE TABLE IF NOT EXISTS batches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			source      TEXT,
			symbols     INTEGER,
			skipped     INTEGER,
			events      INTEGER,
			occurrences INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batches_started ON batches(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvent(evt *EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO events (recorded_at, symbol, event_date, kind) VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Date.Format("2006-01-02"), evt.Kind,
	)
	return err
}

func (r *SQLiteRecorder) RecordBatch(b *BatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO batches
		(started_at, finished_at, source, symbols, skipped, events, occurrences)
		VALUES (?,?,?,?,?,?,?)`,
		b.StartedAt.Unix(), b.FinishedAt.Unix(), b.Source,
		b.Symbols, b.Skipped, b.Events, b.Occurrences,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
