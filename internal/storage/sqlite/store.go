// Package sqlite provides SQLite-backed persistence for email signups.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/storage/sqlitemigrate"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed signup persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a signup SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AddSignup stores a signup, reporting duplicates via ErrDuplicateSignup.
func (s *Store) AddSignup(ctx context.Context, signup storage.Signup) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	email := strings.TrimSpace(signup.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO signups (email, created_at) VALUES (?, ?)`,
		email,
		signup.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateSignup
		}
		return fmt.Errorf("add signup: %w", err)
	}
	return nil
}

// CountSignups returns the number of stored signups.
func (s *Store) CountSignups(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM signups`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count signups: %w", err)
	}
	return count, nil
}

// HasSignup reports whether the address is already registered.
func (s *Store) HasSignup(ctx context.Context, email string) (bool, error) {
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	var one int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM signups WHERE email = ?`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check signup: %w", err)
	}
	return true, nil
}

// isUniqueViolation reports whether err is the primary-key violation SQLite
// raises for a duplicate email.
func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
