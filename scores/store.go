// Package scores keeps the high score table in SQLite.
package scores

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a high score table backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Entry is one finished game.
type Entry struct {
	ID        int64
	Score     uint
	Wave      int
	CreatedAt time.Time
}

// Open creates or opens the database at path, creating parent directories.
// The path ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("scores: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot open database: %w", err)
	}
	// a second connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scores: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scores: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			wave INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a finished game and returns its row ID.
func (s *Store) Save(score uint, wave int) (int64, error) {
	res, err := s.db.Exec("INSERT INTO scores (score, wave) VALUES (?, ?)", int64(score), wave)
	if err != nil {
		return 0, fmt.Errorf("scores: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scores: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Top returns the best limit games, highest score first. Ties keep the
// earlier game first. A limit of zero or less means 10.
func (s *Store) Top(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, score, wave, created_at
		FROM scores
		ORDER BY score DESC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			score     int64
			createdAt any
		)
		if err := rows.Scan(&e.ID, &score, &e.Wave, &createdAt); err != nil {
			return nil, fmt.Errorf("scores: cannot scan row: %w", err)
		}
		e.Score = uint(score)
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse(time.DateTime, v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scores: row iteration error: %w", err)
	}
	return entries, nil
}

// Best returns the highest recorded score, or 0 for an empty table.
func (s *Store) Best() (uint, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&best); err != nil {
		return 0, fmt.Errorf("scores: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return uint(best.Int64), nil
}

// Clear removes every recorded game.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("scores: cannot clear scores: %w", err)
	}
	return nil
}
