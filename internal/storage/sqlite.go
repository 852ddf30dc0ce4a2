// Package storage provides SQLite-based persistence for finished match
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Store manages the SQLite database connection for the match history.
type Store struct {
	db *sql.DB
}

// MatchEntry is one stored match outcome.
type MatchEntry struct {
	ID int64
	core.MatchReport
	CreatedAt time.Time
}

// ScenarioStats contains aggregated results for one scenario.
type ScenarioStats struct {
	Scenario    string
	Matches     int
	Player1Wins int
	Player2Wins int
	Draws       int
	AvgDuration float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			survivors1 INTEGER NOT NULL DEFAULT 0,
			survivors2 INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_scenario ON match_results(scenario);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(r core.MatchReport) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO match_results
		 (scenario, seed, winner, survivors1, survivors2, end_reason, duration_secs, turns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Seed, r.Winner, r.Survivors1, r.Survivors2, r.EndReason, r.DurationSecs, r.Turns,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectMatch = `SELECT id, scenario, seed, winner, survivors1, survivors2, end_reason, duration_secs, turns, created_at
	FROM match_results`

// RecentMatches retrieves the most recent matches across all scenarios,
// newest first.
func (s *Store) RecentMatches(limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(selectMatch+` ORDER BY id DESC LIMIT ?`, limit)
}

// MatchesByScenario retrieves the most recent matches of one scenario,
// newest first.
func (s *Store) MatchesByScenario(scenario string, limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(selectMatch+` WHERE scenario = ? ORDER BY id DESC LIMIT ?`, scenario, limit)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var entries []MatchEntry
	for rows.Next() {
		var e MatchEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Scenario, &e.Seed, &e.Winner, &e.Survivors1, &e.Survivors2,
			&e.EndReason, &e.DurationSecs, &e.Turns, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// MatchByID retrieves a single match. Returns nil if it does not exist.
func (s *Store) MatchByID(id int64) (*MatchEntry, error) {
	entries, err := s.queryMatches(selectMatch+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ClearMatches removes all matches of the given scenario.
func (s *Store) ClearMatches(scenario string) error {
	_, err := s.db.Exec("DELETE FROM match_results WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// GetScenarioStats retrieves aggregated results for a specific scenario.
func (s *Store) GetScenarioStats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(winner = 1), 0),
		        COALESCE(SUM(winner = 2), 0),
		        COALESCE(SUM(winner = 0), 0),
		        COALESCE(AVG(duration_secs), 0)
		 FROM match_results WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Matches, &stats.Player1Wins, &stats.Player2Wins, &stats.Draws, &stats.AvgDuration)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM match_results WHERE scenario = ? ORDER BY id DESC LIMIT 1`,
		scenario,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllScenarioStats retrieves results for every scenario that has been
// played.
func (s *Store) GetAllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), SUM(winner = 1), SUM(winner = 2), SUM(winner = 0),
		        AVG(duration_secs), MAX(created_at)
		 FROM match_results
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastPlayed any
		if err := rows.Scan(&st.Scenario, &st.Matches, &st.Player1Wins, &st.Player2Wins, &st.Draws,
			&st.AvgDuration, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the datetime as either time.Time or string.
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
