package statebag

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"rig-retarget/internal/ikfk"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("statebag: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("statebag: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("statebag: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("statebag: migration: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scene_state (
			scene           TEXT PRIMARY KEY,
			source          TEXT NOT NULL DEFAULT '',
			source_action   TEXT NOT NULL DEFAULT '',
			target          TEXT NOT NULL DEFAULT '',
			target_action   TEXT NOT NULL DEFAULT '',
			enabled         INTEGER NOT NULL DEFAULT 0,
			mode            TEXT NOT NULL DEFAULT 'RIG',
			left_arm        REAL NOT NULL DEFAULT 0,
			right_arm       REAL NOT NULL DEFAULT 0,
			left_leg        REAL NOT NULL DEFAULT 0,
			right_leg       REAL NOT NULL DEFAULT 0,
			previous        TEXT NOT NULL DEFAULT 'RIG',
			before_retarget TEXT NOT NULL DEFAULT '',
			updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	_, err := s.db.Exec(schema)

	return err
}

// Load implements Store.
func (s *SQLiteStore) Load(scene string) (Record, error) {
	rec := Record{Scene: scene}

	var enabled int

	err := s.db.QueryRow(`
		SELECT source, source_action, target, target_action, enabled, mode,
		       left_arm, right_arm, left_leg, right_leg, previous, before_retarget
		FROM scene_state WHERE scene = ?`, scene,
	).Scan(
		&rec.Source, &rec.SourceAction, &rec.Target, &rec.TargetAction, &enabled, &rec.Mode,
		&rec.IKFK.LeftArm, &rec.IKFK.RightArm, &rec.IKFK.LeftLeg, &rec.IKFK.RightLeg,
		&rec.IKFK.Previous, &rec.IKFK.BeforeRetarget,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, scene)
	}

	if err != nil {
		return Record{}, fmt.Errorf("statebag: load %q: %w", scene, err)
	}

	rec.Enabled = enabled != 0

	return rec, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec Record) error {
	if rec.Scene == "" {
		return ErrEmptyScene
	}

	if rec.Mode == "" {
		rec.Mode = ikfk.Mixed
	}

	if rec.IKFK.Previous == "" {
		rec.IKFK.Previous = ikfk.Mixed
	}

	_, err := s.db.Exec(`
		INSERT INTO scene_state (
			scene, source, source_action, target, target_action, enabled, mode,
			left_arm, right_arm, left_leg, right_leg, previous, before_retarget, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(scene) DO UPDATE SET
			source = excluded.source,
			source_action = excluded.source_action,
			target = excluded.target,
			target_action = excluded.target_action,
			enabled = excluded.enabled,
			mode = excluded.mode,
			left_arm = excluded.left_arm,
			right_arm = excluded.right_arm,
			left_leg = excluded.left_leg,
			right_leg = excluded.right_leg,
			previous = excluded.previous,
			before_retarget = excluded.before_retarget,
			updated_at = excluded.updated_at`,
		rec.Scene, rec.Source, rec.SourceAction, rec.Target, rec.TargetAction, boolInt(rec.Enabled), string(rec.Mode),
		rec.IKFK.LeftArm, rec.IKFK.RightArm, rec.IKFK.LeftLeg, rec.IKFK.RightLeg,
		string(rec.IKFK.Previous), string(rec.IKFK.BeforeRetarget),
	)
	if err != nil {
		return fmt.Errorf("statebag: save %q: %w", rec.Scene, err)
	}

	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(scene string) error {
	if _, err := s.db.Exec(`DELETE FROM scene_state WHERE scene = ?`, scene); err != nil {
		return fmt.Errorf("statebag: delete %q: %w", scene, err)
	}

	return nil
}

// Scenes implements Store.
func (s *SQLiteStore) Scenes() ([]string, error) {
	rows, err := s.db.Query(`SELECT scene FROM scene_state ORDER BY scene`)
	if err != nil {
		return nil, fmt.Errorf("statebag: list scenes: %w", err)
	}
	defer rows.Close()

	var out []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		out = append(out, name)
	}

	return out, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
