// Package storage provides SQLite-based persistence for level progress and
// solve history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoProgress is returned by LoadLevel when a profile has never saved.
var ErrNoProgress = errors.New("storage: no progress for profile")

// Store manages the SQLite database connection.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Solve represents one completed level.
type Solve struct {
	ID        int64
	Profile   string
	Level     int // Zero-based level index
	GridSize  int
	Pairs     int
	Moves     int // Accepted paths, including redraws
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
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

	// SQLite allows one writer; a single connection serializes sessions.
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			level INTEGER NOT NULL,
			grid_size INTEGER NOT NULL,
			pairs INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_profile ON solves(profile, created_at DESC);
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

// LoadLevel returns the saved level index for a profile.
// Returns ErrNoProgress if the profile has no saved level.
func (s *Store) LoadLevel(profile string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT level FROM progress WHERE profile = ?",
		profile,
	).Scan(&level)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoProgress
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return level, nil
}

// SaveLevel stores the current level index for a profile.
func (s *Store) SaveLevel(profile string, level int) error {
	if level < 0 {
		level = 0
	}
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, level, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET level = excluded.level, updated_at = CURRENT_TIMESTAMP`,
		profile, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress deletes the saved level of a profile. Solve history is kept.
func (s *Store) ResetProgress(profile string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// RecordSolve records a completed level.
// Returns the ID of the inserted record.
func (s *Store) RecordSolve(solve Solve) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solves (profile, level, grid_size, pairs, moves, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		solve.Profile,
		solve.Level,
		solve.GridSize,
		solve.Pairs,
		solve.Moves,
		solve.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSolves retrieves the most recent solves of a profile, newest first.
func (s *Store) RecentSolves(profile string, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, level, grid_size, pairs, moves, duration_ms, created_at
		 FROM solves
		 WHERE profile = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		var solve Solve
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&solve.ID,
			&solve.Profile,
			&solve.Level,
			&solve.GridSize,
			&solve.Pairs,
			&solve.Moves,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		solve.Duration = time.Duration(durationMs) * time.Millisecond
		solve.CreatedAt = parseTime(createdAt)
		solves = append(solves, solve)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return solves, nil
}

// ProfileStats contains aggregated statistics for a profile.
type ProfileStats struct {
	Profile      string
	Level        int // Saved level index, 0 when none
	Solves       int
	BestLevel    int // Highest solved level index, -1 when none
	TotalMoves   int64
	AvgDuration  time.Duration
	LastSolvedAt time.Time
}

// Stats retrieves aggregated statistics for a profile.
func (s *Store) Stats(profile string) (*ProfileStats, error) {
	stats := &ProfileStats{Profile: profile}

	level, err := s.LoadLevel(profile)
	if err != nil && !errors.Is(err, ErrNoProgress) {
		return nil, err
	}
	stats.Level = level

	var avgMs float64
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), -1), COALESCE(SUM(moves), 0), COALESCE(AVG(duration_ms), 0)
		 FROM solves WHERE profile = ?`,
		profile,
	).Scan(&stats.Solves, &stats.BestLevel, &stats.TotalMoves, &avgMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}
	stats.AvgDuration = time.Duration(avgMs) * time.Millisecond

	var lastSolved any
	err = s.db.QueryRow(
		`SELECT created_at FROM solves WHERE profile = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		profile,
	).Scan(&lastSolved)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last solve: %w", err)
	}
	if err == nil {
		stats.LastSolvedAt = parseTime(lastSolved)
	}

	return stats, nil
}

// parseTime converts a DATETIME column, which the driver returns either as
// time.Time or as text.
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
