// Package sqlite persists bookmarks in a SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB owns the SQLite connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens the database at path, creating its directory, and applies
// pending migrations. An existing database is copied to path+".bak" before
// it is migrated.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{conn: conn}
	version, err := db.schemaVersion()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if version < len(migrations) {
		if existed && version > 0 {
			if err := backup(path); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		if err := db.migrate(migrations, version); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return db, nil
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// BookmarkRepository returns the bookmark repository backed by this database.
func (db *DB) BookmarkRepository() bookmark.Repository {
	return newBookmarkRepository(db.conn)
}

type migration struct {
	name string
	sql  string
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	out := make([]migration, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(migrationFiles, "migrations/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		out = append(out, migration{name: name, sql: string(data)})
	}
	return out, nil
}

func (db *DB) schemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// migrate applies migrations[from:], each in its own transaction.
func (db *DB) migrate(migrations []migration, from int) error {
	for i := from; i < len(migrations); i++ {
		m := migrations[i]
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", m.name, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.name, err)
		}
		log.Info(log.CatDB, "Applied migration", "name", m.name, "version", i+1)
	}
	return nil
}

func backup(path string) (err error) {
	src, err := os.Open(path) // #nosec G304 -- path is the configured database file
	if err != nil {
		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create database backup: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write database backup: %w", errors.Join(err, os.Remove(path+".bak")))
	}
	log.Info(log.CatDB, "Backed up database before migrating", "path", path+".bak")
	return nil
}
