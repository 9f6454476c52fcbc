// Package storage keeps the run history of the current process in an
// in-memory SQLite database. Nothing is written to disk.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the in-memory database.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID        int64
	GameID    string
	LevelID   string
	LevelName string
	Outcome   string // "level_complete" or "game_over"
	Score     int
	Accuracy  int
	WPM       int
	MaxCombo  int
	Correct   int
	Total     int
	Duration  float64 // Seconds
	CreatedAt time.Time
}

// CharTotal is the aggregated outcome of one character over all runs.
type CharTotal struct {
	Char   rune
	Hits   int
	Errors int
}

// Accuracy is the percentage of hits, 100 when the character was never typed.
func (c CharTotal) Accuracy() float64 {
	if c.Hits+c.Errors == 0 {
		return 100
	}
	return 100 * float64(c.Hits) / float64(c.Hits+c.Errors)
}

// OpenMemory creates an empty in-memory store and runs migrations.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_name TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			duration_secs REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_id);

		CREATE TABLE IF NOT EXISTS char_tallies (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ch TEXT NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, ch)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The history is lost.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run with its per-character tallies.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run, typed, errs map[rune]int) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO runs
		 (game_id, level_id, level_name, outcome, score, accuracy, wpm, max_combo, correct, total, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GameID, run.LevelID, run.LevelName, run.Outcome,
		run.Score, run.Accuracy, run.WPM, run.MaxCombo,
		run.Correct, run.Total, run.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, t := range mergeTallies(typed, errs) {
		if _, err := tx.Exec(
			"INSERT INTO char_tallies (run_id, ch, hits, errors) VALUES (?, ?, ?, ?)",
			id, string(t.Char), t.Hits, t.Errors,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save tally for %q: %w", t.Char, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// mergeTallies joins hit and error maps into totals sorted by character.
func mergeTallies(typed, errs map[rune]int) []CharTotal {
	byChar := make(map[rune]*CharTotal)
	get := func(r rune) *CharTotal {
		if t, ok := byChar[r]; ok {
			return t
		}
		t := &CharTotal{Char: r}
		byChar[r] = t
		return t
	}
	for r, n := range typed {
		get(r).Hits += n
	}
	for r, n := range errs {
		get(r).Errors += n
	}

	out := make([]CharTotal, 0, len(byChar))
	for _, t := range byChar {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

const runColumns = `id, game_id, level_id, level_name, outcome, score, accuracy, wpm,
	max_combo, correct, total, duration_secs, created_at`

// TopRuns retrieves the best N runs for the given game.
// Results are ordered by score descending, older runs first on ties.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the most recent runs of any game, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.LevelID, &r.LevelName, &r.Outcome,
			&r.Score, &r.Accuracy, &r.WPM, &r.MaxCombo,
			&r.Correct, &r.Total, &r.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestScore returns the highest score recorded on the given level.
// Returns 0 if the level was never played.
func (s *Store) BestScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level_id = ?",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// CharTotals aggregates hits and errors per character over every run,
// sorted by character.
func (s *Store) CharTotals() ([]CharTotal, error) {
	rows, err := s.db.Query(
		`SELECT ch, SUM(hits), SUM(errors)
		 FROM char_tallies
		 GROUP BY ch
		 ORDER BY ch`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tallies: %w", err)
	}
	defer rows.Close()

	var totals []CharTotal
	for rows.Next() {
		var char string
		var t CharTotal
		if err := rows.Scan(&char, &t.Hits, &t.Errors); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		for _, r := range char {
			t.Char = r
			break
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return totals, nil
}

// ClearRuns deletes the whole history.
func (s *Store) ClearRuns() error {
	for _, table := range []string{"char_tallies", "runs"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}
