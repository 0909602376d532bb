// Package history keeps a local sqlite log of snapshots captured by the
// daemon, one row per successful refresh.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wakamex/ccusage/internal/usage"
)

type Store struct {
	db *sql.DB
}

// Row is one recorded capture. Bucket percentages are nil when the window
// was absent from the snapshot.
type Row struct {
	CapturedAt     string
	Plan           string
	FiveHour       *float64
	SevenDay       *float64
	SevenDaySonnet *float64
	SevenDayOpus   *float64
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: creating DB dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: opening DB: %w", err)
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS usage_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			captured_at TEXT NOT NULL,
			plan TEXT NOT NULL,
			five_hour_pct REAL,
			seven_day_pct REAL,
			seven_day_sonnet_pct REAL,
			seven_day_opus_pct REAL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_usage_history_captured_at ON usage_history(captured_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("history: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Record(snap usage.Snapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO usage_history
			(captured_at, plan, five_hour_pct, seven_day_pct, seven_day_sonnet_pct, seven_day_opus_pct)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.UpdatedAt,
		snap.Plan,
		bucketPct(snap.FiveHour),
		bucketPct(snap.SevenDay),
		bucketPct(snap.SevenDaySonnet),
		bucketPct(snap.SevenDayOpus),
	)
	if err != nil {
		return fmt.Errorf("history: recording snapshot: %w", err)
	}
	return nil
}

// Recent returns up to n rows, newest first.
func (s *Store) Recent(n int) ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT captured_at, plan, five_hour_pct, seven_day_pct, seven_day_sonnet_pct, seven_day_opus_pct
		 FROM usage_history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: querying rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var fiveHour, sevenDay, sonnet, opus sql.NullFloat64
		if err := rows.Scan(&row.CapturedAt, &row.Plan, &fiveHour, &sevenDay, &sonnet, &opus); err != nil {
			return nil, fmt.Errorf("history: scanning row: %w", err)
		}
		row.FiveHour = nullablePct(fiveHour)
		row.SevenDay = nullablePct(sevenDay)
		row.SevenDaySonnet = nullablePct(sonnet)
		row.SevenDayOpus = nullablePct(opus)
		out = append(out, row)
	}
	return out, rows.Err()
}

func bucketPct(b *usage.Bucket) any {
	if b == nil {
		return nil
	}
	return b.Pct
}

func nullablePct(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
