// Package sqlite implements [tutor.SettingsStore] on SQLite.
//
// The store holds the AI settings edited from the admin back-office: the
// Gemini API key and the per-profile system instructions.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/onbuch/tutor"
)

// Interface compliance check.
var _ tutor.SettingsStore = (*DB)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Setting is a stored key/value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// DB is a SQLite-backed settings store.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*DB, error) {
	dsn := ":memory:"
	if path != ":memory:" && path != "" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create db directory %s: %w", dir, err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &DB{db: db, now: time.Now}, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Setting returns the value stored under key, or tutor.ErrSettingNotFound.
func (d *DB) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sqlite: %q: %w", key, tutor.ErrSettingNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: read setting %q: %w", key, err)
	}
	return value, nil
}

// PutSetting inserts or replaces the value stored under key.
func (d *DB) PutSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("sqlite: empty setting key: %w", tutor.ErrValidation)
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, d.now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite: write setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key returns
// tutor.ErrSettingNotFound.
func (d *DB) DeleteSetting(ctx context.Context, key string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("sqlite: delete setting %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete setting %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite: %q: %w", key, tutor.ErrSettingNotFound)
	}
	return nil
}

// Settings returns every stored setting ordered by key.
func (d *DB) Settings(ctx context.Context) ([]Setting, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list settings: %w", err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var s Setting
		var updated int64
		if err := rows.Scan(&s.Key, &s.Value, &updated); err != nil {
			return nil, fmt.Errorf("sqlite: scan setting: %w", err)
		}
		s.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list settings: %w", err)
	}
	return out, nil
}
