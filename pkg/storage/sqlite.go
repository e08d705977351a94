package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists window positions across sessions.
type SQLiteStore struct {
	db   *sql.DB
	once sync.Once
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS gump_positions (
			serial INTEGER PRIMARY KEY,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Position(serial uint32) (int, int, bool, error) {
	var x, y int
	err := s.db.QueryRow(`SELECT x, y FROM gump_positions WHERE serial = ?`, int64(serial)).Scan(&x, &y)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("position %#08x: %w", serial, err)
	}
	return x, y, true, nil
}

func (s *SQLiteStore) SavePosition(serial uint32, x, y int) error {
	_, err := s.db.Exec(
		`INSERT INTO gump_positions(serial, x, y, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(serial) DO UPDATE SET x = excluded.x, y = excluded.y, updated_at = excluded.updated_at`,
		int64(serial), x, y, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save position %#08x: %w", serial, err)
	}
	return nil
}

// Records lists every cached position ordered by serial.
func (s *SQLiteStore) Records() ([]Record, error) {
	rows, err := s.db.Query(`SELECT serial, x, y, updated_at FROM gump_positions ORDER BY serial`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			serial  int64
			updated string
		)
		if err := rows.Scan(&serial, &r.X, &r.Y, &updated); err != nil {
			return nil, err
		}
		r.Serial = uint32(serial)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear removes every cached position and reports how many were dropped.
func (s *SQLiteStore) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM gump_positions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}
