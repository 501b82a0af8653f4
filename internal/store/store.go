// Package store is the SQLite configuration repository behind the chat
// config commands. It keeps general number settings, string settings (the
// keyword lists) and location weights, and builds catalog snapshots from
// them for the peg engine.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/gzhole/pegbot/internal/location"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// General (number) config names.
const (
	GeneralRequireValues = "requireValues"
	GeneralLimit         = "limit"
	GeneralMinimum       = "minimum"
	GeneralWinners       = "winners"
)

// String config names.
const (
	StringKeyword        = "keyword"
	StringPenaltyKeyword = "penaltyKeyword"
	StringLinkedKeyword  = "linkedKeyword"
)

var ErrEmptyValue = errors.New("store: empty value")

type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS general_config (
			name  TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS string_config (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL,
			value TEXT NOT NULL,
			UNIQUE (name, value)
		);

		CREATE INDEX IF NOT EXISTS idx_string_config_name ON string_config(name);

		CREATE TABLE IF NOT EXISTS location_weight (
			location1 TEXT NOT NULL,
			location2 TEXT NOT NULL,
			weight    INTEGER NOT NULL,
			PRIMARY KEY (location1, location2)
		);
	`)
	return err
}

// ─── General config ─────────────────────────────────────────────────────────

// GetGeneralConfig returns the value of a number setting and whether it is set.
func (s *Store) GetGeneralConfig(ctx context.Context, name string) (int, bool, error) {
	var value int
	err := s.db.QueryRowContext(ctx, "SELECT value FROM general_config WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("store: get general config %q: %w", name, err)
	}
	return value, true, nil
}

func (s *Store) SetGeneralConfig(ctx context.Context, name string, value int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyValue
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO general_config (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	if err != nil {
		return fmt.Errorf("store: set general config %q: %w", name, err)
	}
	return nil
}

// DeleteGeneralConfig removes a number setting and reports whether it existed.
func (s *Store) DeleteGeneralConfig(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM general_config WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("store: delete general config %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AllGeneralConfig returns every number setting.
func (s *Store) AllGeneralConfig(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, value FROM general_config ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("store: list general config: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

// RequireKeywords reports whether keywords are required, i.e. whether the
// requireValues setting is 1. An unset value means not required.
func (s *Store) RequireKeywords(ctx context.Context) (bool, error) {
	v, ok, err := s.GetGeneralConfig(ctx, GeneralRequireValues)
	if err != nil {
		return false, err
	}
	return ok && v == 1, nil
}

// ─── String config ──────────────────────────────────────────────────────────

// GetStringConfig returns the values of a string setting in insertion order.
func (s *Store) GetStringConfig(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT value FROM string_config WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("store: get string config %q: %w", name, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// AddStringConfig appends value to a string setting. Adding a value that is
// already present is a no-op.
func (s *Store) AddStringConfig(ctx context.Context, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO string_config (name, value) VALUES (?, ?)", name, value)
	if err != nil {
		return fmt.Errorf("store: add string config %q: %w", name, err)
	}
	return nil
}

// DeleteStringConfig removes value from a string setting and reports
// whether it was present.
func (s *Store) DeleteStringConfig(ctx context.Context, name, value string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM string_config WHERE name = ? AND value = ?", name, strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("store: delete string config %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ─── Location weights ───────────────────────────────────────────────────────

func (s *Store) GetLocationWeights(ctx context.Context) ([]location.Weight, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT location1, location2, weight FROM location_weight ORDER BY location1, location2")
	if err != nil {
		return nil, fmt.Errorf("store: get location weights: %w", err)
	}
	defer rows.Close()

	var weights []location.Weight
	for rows.Next() {
		var w location.Weight
		if err := rows.Scan(&w.From, &w.To, &w.Weight); err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}

// SetLocationWeight sets the weight for pegs sent from one location to
// another. The pair is directional.
func (s *Store) SetLocationWeight(ctx context.Context, from, to string, weight int) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return ErrEmptyValue
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO location_weight (location1, location2, weight) VALUES (?, ?, ?)
		ON CONFLICT(location1, location2) DO UPDATE SET weight = excluded.weight`, from, to, weight)
	if err != nil {
		return fmt.Errorf("store: set location weight %s -> %s: %w", from, to, err)
	}
	return nil
}

func (s *Store) DeleteLocationWeight(ctx context.Context, from, to string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM location_weight WHERE location1 = ? AND location2 = ?",
		strings.TrimSpace(from), strings.TrimSpace(to))
	if err != nil {
		return false, fmt.Errorf("store: delete location weight %s -> %s: %w", from, to, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
