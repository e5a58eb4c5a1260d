package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Checkpoint is a saved snapshot of a conversation thread's state
type Checkpoint struct {
	ID        string          `json:"id"`
	ThreadID  string          `json:"thread_id"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store is a SQLite-backed checkpoint store bound to a database path
type Store struct {
	path string
	db   *sql.DB
}

// Open constructs a store bound to the given database path. No I/O
// happens until Initialize is called.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the database path the store is bound to
func (s *Store) Path() string {
	return s.path
}

// Initialize opens the database and creates the schema. It must be
// called before any checkpoint operation.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.path+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS checkpoints (
			id TEXT PRIMARY KEY,
			thread_id TEXT NOT NULL,
			state BLOB NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_checkpoints_thread
			ON checkpoints(thread_id, created_at);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.db = db
	return nil
}

// Close flushes and closes the database. Calling it on an
// uninitialized store is a no-op.
func (s *Store) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (s *Store) ready() error {
	if s.db == nil {
		return ErrStoreClosed
	}
	return nil
}

// Save persists a checkpoint. A blank ID is assigned a generated one,
// a zero CreatedAt is stamped with the current time.
func (s *Store) Save(ctx context.Context, cp *Checkpoint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if cp.ThreadID == "" {
		return fmt.Errorf("checkpoint thread id is required")
	}

	if cp.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate checkpoint id: %w", err)
		}
		cp.ID = id
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO checkpoints (id, thread_id, state, created_at) VALUES (?, ?, ?, ?)`,
		cp.ID, cp.ThreadID, []byte(cp.State), cp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load retrieves a checkpoint by ID
func (s *Store) Load(ctx context.Context, id string) (*Checkpoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, thread_id, state, created_at FROM checkpoints WHERE id = ?`, id)
	return scanCheckpoint(row)
}

// Latest retrieves the most recent checkpoint for a thread
func (s *Store) Latest(ctx context.Context, threadID string) (*Checkpoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, thread_id, state, created_at FROM checkpoints
		 WHERE thread_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, threadID)
	return scanCheckpoint(row)
}

// List returns checkpoints for a thread, newest first. A limit <= 0
// returns all of them.
func (s *Store) List(ctx context.Context, threadID string, limit int) ([]*Checkpoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT id, thread_id, state, created_at FROM checkpoints
		 WHERE thread_id = ? ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{threadID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []*Checkpoint
	for rows.Next() {
		cp := &Checkpoint{}
		var state []byte
		if err := rows.Scan(&cp.ID, &cp.ThreadID, &state, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		cp.State = json.RawMessage(state)
		checkpoints = append(checkpoints, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checkpoints: %w", err)
	}
	return checkpoints, nil
}

// Delete removes a checkpoint by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}

// Clear removes all checkpoints for a thread
func (s *Store) Clear(ctx context.Context, threadID string) error {
	if err := s.ready(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE thread_id = ?`, threadID); err != nil {
		return fmt.Errorf("failed to clear checkpoints: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCheckpoint(row rowScanner) (*Checkpoint, error) {
	cp := &Checkpoint{}
	var state []byte
	if err := row.Scan(&cp.ID, &cp.ThreadID, &state, &cp.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
	}
	cp.State = json.RawMessage(state)
	return cp, nil
}
