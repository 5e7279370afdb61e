/*
Package storage implements the persistent storage layer for the advisor.

This package provides SQLite-based storage for invocation history, learned
patterns, keyword weights, and the skill metadata cache. The database lives at
~/.skill-advisor/history.db by default and uses modernc.org/sqlite (a pure Go,
CGo-free implementation).

Unlike purely advisory caches, this storage is load-bearing for the learning
pipeline: operations return errors when the database is unavailable so the
enclosing call can fail instead of silently dropping writes.
*/
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrUnavailable is returned when the database has not been initialized or
// failed to open.
var ErrUnavailable = errors.New("storage unavailable")

// Storage defines the interface for persistent advisor storage.
type Storage interface {
	// Init opens the database and runs migrations.
	Init() error

	// RecordInvocation upserts an invocation keyed by (timestamp, skill name).
	RecordInvocation(inv Invocation) error

	// GetInvocation retrieves an invocation by its ID.
	GetInvocation(id string) (*Invocation, error)

	// GetRecentInvocations retrieves the most recent invocations, newest first.
	GetRecentInvocations(limit int) ([]Invocation, error)

	// UpdateInvocationOutcome rewrites the outcome and feedback of an invocation.
	UpdateInvocationOutcome(id, outcome, feedback string) error

	// GetSkillMetrics aggregates invocation history for a skill.
	GetSkillMetrics(skillName string) (SkillMetrics, error)

	// LearnPattern inserts or updates a pattern, folding the sample success
	// rate into a running weighted average.
	LearnPattern(p Pattern) error

	// FindMatchingPatterns returns patterns whose keyword field contains any
	// supplied keyword as a substring, best first.
	FindMatchingPatterns(keywords []string, limit int) ([]Pattern, error)

	// UpdateKeywordWeight upserts a (keyword, skill) weight, overwriting any
	// prior value.
	UpdateKeywordWeight(keyword, skillName string, weight float64) error

	// GetSkillsForKeywords sums stored weights per skill across the supplied
	// keywords, highest first.
	GetSkillsForKeywords(keywords []string, limit int) ([]SkillWeight, error)

	// GetRecentSuccesses retrieves the most recent successful invocations.
	GetRecentSuccesses(limit int) ([]Invocation, error)

	// CacheSkillMetadata upserts a skill-metadata row. Usage counters of an
	// existing row are preserved.
	CacheSkillMetadata(rec SkillRecord) error

	// GetAllSkills retrieves the full skill metadata cache.
	GetAllSkills() ([]SkillRecord, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	mu       sync.Mutex
	initOnce sync.Once
}

// NewStorage creates a storage instance backed by ~/.skill-advisor/history.db.
func NewStorage() (*SQLiteStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStorageAt(filepath.Join(home, ".skill-advisor", "history.db")), nil
}

// NewStorageAt creates a storage instance backed by the given database path.
func NewStorageAt(dbPath string) *SQLiteStorage {
	return &SQLiteStorage{dbPath: dbPath}
}

// Init opens the database and runs migrations. Safe to call more than once;
// only the first call does work.
func (s *SQLiteStorage) Init() error {
	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		if err := db.Ping(); err != nil {
			db.Close()
			initErr = fmt.Errorf("failed to ping database: %w", err)
			return
		}

		s.db = db

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.db = nil
			db.Close()
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// ready reports whether the database is usable.
func (s *SQLiteStorage) ready() error {
	if s.db == nil {
		return ErrUnavailable
	}
	return nil
}

// runMigrations executes database schema migrations.
func (s *SQLiteStorage) runMigrations() error {
	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStorage) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// currentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStorage) currentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}

	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStorage) setMigrationVersion(version int) error {
	_, err := s.db.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		version, fmt.Sprintf("migration_%d", version),
	)
	return err
}

// migration001InitialSchema creates the four advisor tables.
func (s *SQLiteStorage) migration001InitialSchema() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			rationale TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL,
			skill_name TEXT NOT NULL,
			confidence REAL NOT NULL,
			invocation_type TEXT NOT NULL,
			outcome TEXT NOT NULL,
			feedback TEXT NOT NULL DEFAULT '',
			UNIQUE(timestamp, skill_name)
		)
	`); err != nil {
		return fmt.Errorf("failed to create invocations table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_invocations_timestamp
		ON invocations(timestamp DESC)
	`); err != nil {
		return fmt.Errorf("failed to create invocations timestamp index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_invocations_skill
		ON invocations(skill_name)
	`); err != nil {
		return fmt.Errorf("failed to create invocations skill index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS patterns (
			pattern_key TEXT PRIMARY KEY,
			keywords TEXT NOT NULL,
			skills TEXT NOT NULL,
			success_rate REAL NOT NULL,
			invocation_count INTEGER NOT NULL,
			last_used INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create patterns table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS keyword_weights (
			keyword TEXT NOT NULL,
			skill_name TEXT NOT NULL,
			weight REAL NOT NULL,
			PRIMARY KEY (keyword, skill_name)
		)
	`); err != nil {
		return fmt.Errorf("failed to create keyword_weights table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS skill_cache (
			skill_name TEXT PRIMARY KEY,
			category TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			invocation_count INTEGER NOT NULL DEFAULT 0,
			success_count INTEGER NOT NULL DEFAULT 0,
			last_invoked INTEGER
		)
	`); err != nil {
		return fmt.Errorf("failed to create skill_cache table: %w", err)
	}

	return nil
}

// millis converts a time to the unix-millisecond representation stored in
// timestamp columns.
func millis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts a stored unix-millisecond timestamp back to time.Time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
