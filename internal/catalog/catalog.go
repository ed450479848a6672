// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog stores imported doctor lists as snapshots in a local
// SQLite database. A snapshot is an immutable copy of one payload, kept in
// source order; the latest snapshot can be served as a read-only data source.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// DefaultPath is used when the configuration leaves the catalog path empty.
const DefaultPath = "data/directory.db"

// timeFormat is fixed-width so imported_at sorts lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoSnapshots is returned by Latest when nothing has been imported yet.
var ErrNoSnapshots = errors.New("catalog has no snapshots")

// Catalog manages the snapshot database.
type Catalog struct {
	db   *sql.DB
	path string
}

// Snapshot describes one imported payload.
type Snapshot struct {
	ID          string    `json:"id" yaml:"id"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Source      string    `json:"source" yaml:"source"`
	ImportedAt  time.Time `json:"imported_at" yaml:"imported_at"`
	Records     int       `json:"records" yaml:"records"`
}

// ImportResult reports the outcome of Import.
type ImportResult struct {
	Snapshot Snapshot
	// Skipped is true when the payload matched the latest snapshot and
	// nothing was written.
	Skipped bool
}

// Open opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Catalog, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	c := &Catalog{db: db, path: path}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Path returns the database file path.
func (c *Catalog) Path() string { return c.path }

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			source TEXT,
			imported_at TEXT NOT NULL,
			record_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS doctors (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT,
			mode TEXT,
			fees REAL,
			experience REAL,
			specialties TEXT,
			PRIMARY KEY (snapshot_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_imported_at ON snapshots(imported_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Fingerprint returns a stable hash of a doctor list, used to detect
// unchanged payloads.
func Fingerprint(doctors []types.Doctor) (string, error) {
	data, err := json.Marshal(doctors)
	if err != nil {
		return "", fmt.Errorf("encoding doctors: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// Import stores doctors as a new snapshot labelled with source. If the
// payload is identical to the latest snapshot it is skipped.
func (c *Catalog) Import(ctx context.Context, source string, doctors []types.Doctor) (ImportResult, error) {
	fp, err := Fingerprint(doctors)
	if err != nil {
		return ImportResult{}, err
	}

	latest, err := c.latestSnapshot(ctx)
	if err != nil && !errors.Is(err, ErrNoSnapshots) {
		return ImportResult{}, err
	}
	if err == nil && latest.Fingerprint == fp {
		return ImportResult{Snapshot: latest, Skipped: true}, nil
	}

	snap := Snapshot{
		ID:          uuid.NewString(),
		Fingerprint: fp,
		Source:      source,
		ImportedAt:  time.Now().UTC(),
		Records:     len(doctors),
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, fingerprint, source, imported_at, record_count) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Fingerprint, snap.Source, snap.ImportedAt.Format(timeFormat), snap.Records,
	); err != nil {
		return ImportResult{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO doctors (snapshot_id, position, name, mode, fees, experience, specialties)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportResult{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range doctors {
		specialtiesJSON, _ := json.Marshal(d.Specialties)
		if _, err := stmt.ExecContext(ctx,
			snap.ID, i, d.Name, d.Mode, d.Fees, d.Experience, string(specialtiesJSON),
		); err != nil {
			return ImportResult{}, fmt.Errorf("inserting doctor %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return ImportResult{Snapshot: snap}, nil
}

// Latest returns the records of the most recent snapshot in source order.
func (c *Catalog) Latest(ctx context.Context) ([]types.Doctor, error) {
	snap, err := c.latestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Records(ctx, snap.ID)
}

// Records returns the records of snapshot id in source order.
func (c *Catalog) Records(ctx context.Context, id string) ([]types.Doctor, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name, mode, fees, experience, specialties FROM doctors
		 WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot %s: %w", id, err)
	}
	defer rows.Close()

	doctors := []types.Doctor{}
	for rows.Next() {
		var (
			d               types.Doctor
			name, mode      sql.NullString
			fees, exp       sql.NullFloat64
			specialtiesJSON sql.NullString
		)
		if err := rows.Scan(&name, &mode, &fees, &exp, &specialtiesJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		d.Name = name.String
		d.Mode = mode.String
		d.Fees = fees.Float64
		d.Experience = exp.Float64
		if specialtiesJSON.Valid {
			json.Unmarshal([]byte(specialtiesJSON.String), &d.Specialties)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// Snapshots lists all snapshots, newest first.
func (c *Catalog) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, fingerprint, source, imported_at, record_count FROM snapshots
		 ORDER BY imported_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func (c *Catalog) latestSnapshot(ctx context.Context) (Snapshot, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, fingerprint, source, imported_at, record_count FROM snapshots
		 ORDER BY imported_at DESC, rowid DESC LIMIT 1`)
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshots
	}
	return s, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var (
		s          Snapshot
		source     sql.NullString
		importedAt string
	)
	if err := row.Scan(&s.ID, &s.Fingerprint, &source, &importedAt, &s.Records); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.Source = source.String
	if t, err := time.Parse(timeFormat, importedAt); err == nil {
		s.ImportedAt = t
	}
	return s, nil
}
