package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSave is returned by LoadBlob when the slot has never been saved.
var ErrNoSave = sql.ErrNoRows

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS openings (
			id TEXT PRIMARY KEY,
			pack TEXT NOT NULL,
			cards TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_openings_created ON openings(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveBlob upserts the save blob for a slot.
func (s *SQLiteDB) SaveBlob(slot string, data []byte) error {
	query := `INSERT INTO saves (slot, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.Exec(query, slot, string(data))
	return err
}

// LoadBlob retrieves the save blob for a slot. Returns ErrNoSave for a
// slot that has never been written.
func (s *SQLiteDB) LoadBlob(slot string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// RecordOpening appends one pack opening to the history.
func (s *SQLiteDB) RecordOpening(opening *Opening) error {
	if opening.ID == "" {
		opening.ID = uuid.New().String()
	}

	query := `INSERT INTO openings (id, pack, cards) VALUES (?, ?, ?)`
	_, err := s.db.Exec(query, opening.ID, opening.Pack, opening.Cards)
	return err
}

// GetOpenings retrieves pack openings newest-first with pagination.
func (s *SQLiteDB) GetOpenings(limit, offset int) ([]Opening, error) {
	query := `SELECT id, pack, cards, created_at
		FROM openings
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var openings []Opening
	for rows.Next() {
		var o Opening
		if err := rows.Scan(&o.ID, &o.Pack, &o.Cards, &o.CreatedAt); err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}

	return openings, rows.Err()
}
