package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"StravaBoard/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the winner ledger and sync history to SQLite.
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

	// WAL mode so dashboard reads don't block the bot's writes.
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
		// month_key as primary key is what enforces the append-only invariant.
		`CREATE TABLE IF NOT EXISTS winners (
			month_key  TEXT PRIMARY KEY,
			alias      TEXT NOT NULL,
			score      REAL NOT NULL,
			category   TEXT NOT NULL,
			profile    TEXT,
			decided_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sync_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			mode             TEXT,
			found_count      INTEGER,
			skipped_auth     TEXT,
			skipped_unmapped TEXT,
			duration_ms      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_ts ON sync_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// HasWinner reports whether a winner is already recorded for the month key.
func (r *SQLiteRecorder) HasWinner(monthKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var one int
	err := r.db.QueryRow(`SELECT 1 FROM winners WHERE month_key = ?`, monthKey).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordWinner appends a winner entry. A month key already present is left
// untouched: INSERT OR IGNORE keeps the first recorded outcome.
func (r *SQLiteRecorder) RecordWinner(w *model.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR IGNORE INTO winners
		(month_key, alias, score, category, profile, decided_at)
		VALUES (?,?,?,?,?,?)`,
		w.MonthKey, w.Alias, w.Score, string(w.Category), w.Profile, time.Now().Unix(),
	)
	return err
}

// WinnerFor returns the recorded winner for a month key, or nil if absent.
func (r *SQLiteRecorder) WinnerFor(monthKey string) (*model.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := &model.Winner{MonthKey: monthKey}
	var category string
	err := r.db.QueryRow(`SELECT alias, score, category, profile FROM winners WHERE month_key = ?`,
		monthKey).Scan(&w.Alias, &w.Score, &category, &w.Profile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.Category = model.WinnerCategory(category)
	return w, nil
}

// RecordSync appends one run's outcome to the history table.
func (r *SQLiteRecorder) RecordSync(evt *SyncEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO sync_runs
		(timestamp, mode, found_count, skipped_auth, skipped_unmapped, duration_ms)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Mode, len(evt.AthletesFound),
		strings.Join(evt.SkippedAuth, ","), strings.Join(evt.SkippedUnmapped, ","),
		evt.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
