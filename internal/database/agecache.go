package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// dbFileName is the cache database file name inside the cache directory.
const dbFileName = "phishscan.db"

// AgeCache is a SQLite-backed cache of domain registration creation
// dates. It lets repeated analyses of hosts under the same registrable
// domain skip the WHOIS round trip.
type AgeCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// ttl is how long a cached entry stays valid.
	ttl time.Duration

	// now returns the current time; overridable in tests.
	now func() time.Time
}

// Options configures AgeCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool

	// TTL is how long cached creation dates stay valid. Registration
	// data changes rarely; a week keeps the "new domain" signal fresh
	// around the 30-day threshold.
	TTL time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		TTL:               7 * 24 * time.Hour,
	}
}

// Open opens or creates an AgeCache in the specified directory.
func Open(dir string, opts Options) (*AgeCache, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("cache database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check cache path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY errors under concurrent analyses.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cache := &AgeCache{
		db:     db,
		dbPath: dbPath,
		ttl:    opts.TTL,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cache.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return cache, nil
}

// createSchema creates the cache table if it does not exist.
func (c *AgeCache) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS registration_ages (
	domain     TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	registrar  TEXT NOT NULL DEFAULT '',
	fetched_at TEXT NOT NULL
)`
	_, err := c.db.ExecContext(context.Background(), schema)
	if err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

// Get returns the cached creation date and registrar for domain.
// ok is false on a miss or when the entry is older than the TTL.
func (c *AgeCache) Get(ctx context.Context, domain string) (time.Time, string, bool) {
	var createdStr, registrar, fetchedStr string
	err := c.db.QueryRowContext(ctx,
		"SELECT created_at, registrar, fetched_at FROM registration_ages WHERE domain = ?",
		domain,
	).Scan(&createdStr, &registrar, &fetchedStr)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) && ctx.Err() == nil {
			// Unexpected read failures behave like a miss.
			return time.Time{}, "", false
		}
		return time.Time{}, "", false
	}

	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return time.Time{}, "", false
	}
	fetched, err := time.Parse(time.RFC3339, fetchedStr)
	if err != nil {
		return time.Time{}, "", false
	}

	if c.ttl > 0 && c.now().Sub(fetched) > c.ttl {
		return time.Time{}, "", false
	}

	return created, registrar, true
}

// Put stores the creation date and registrar for domain, replacing any
// previous entry.
func (c *AgeCache) Put(ctx context.Context, domain string, created time.Time, registrar string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO registration_ages (domain, created_at, registrar, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(domain) DO UPDATE SET
		   created_at = excluded.created_at,
		   registrar  = excluded.registrar,
		   fetched_at = excluded.fetched_at`,
		domain,
		created.UTC().Format(time.RFC3339),
		registrar,
		c.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to cache registration age for %s: %w", domain, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *AgeCache) Close() error {
	return c.db.Close()
}

// Path returns the path to the cache database file.
func (c *AgeCache) Path() string {
	return c.dbPath
}
