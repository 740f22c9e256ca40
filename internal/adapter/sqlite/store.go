// Package sqlite persists resolved addresses in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/couchcryptid/address-resolver/internal/domain"
)

// Compile-time interface verification.
var _ domain.AddressStore = (*Store)(nil)

// Store implements domain.AddressStore. Records are insert-only; a duplicate
// insert leaves the existing row untouched.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports one writer at a time, so limit to one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS addresses (
			key TEXT PRIMARY KEY,
			full_address TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			cached_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the cached record for key, or (nil, nil) when absent.
func (s *Store) Lookup(ctx context.Context, key string) (*domain.CachedAddress, error) {
	var rec domain.CachedAddress
	var cachedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT key, full_address, latitude, longitude, cached_at
		FROM addresses
		WHERE key = ?
	`, key).Scan(&rec.Key, &rec.FullAddress, &rec.Lat, &rec.Lon, &cachedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup address: %w", err)
	}

	rec.CachedAt, err = time.Parse(time.RFC3339, cachedAt)
	if err != nil {
		return nil, fmt.Errorf("parse cached_at: %w", err)
	}

	return &rec, nil
}

// Insert persists a new record, stamping it with the current time. Inserting
// an existing key is a no-op: the first writer wins and concurrent duplicate
// inserts cannot corrupt the record set.
func (s *Store) Insert(ctx context.Context, rec domain.CachedAddress) error {
	if rec.CachedAt.IsZero() {
		rec.CachedAt = domain.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO addresses (key, full_address, latitude, longitude, cached_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`, rec.Key, rec.FullAddress, rec.Lat, rec.Lon, rec.CachedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}
