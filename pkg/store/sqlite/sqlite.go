// Package sqlite stores boards in a single SQLite table as JSON blobs.
package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "brainboard.db"

// Store persists boards to the boards table.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and ensures the schema.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !stderrors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create boards table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM boards WHERE id = ?`, boardID).Scan(&payload)
	if stderrors.Is(err, sql.ErrNoRows) {
		return layer.Snapshot{}, store.ErrNotFound
	}
	if err != nil {
		return layer.Snapshot{}, store.Storage(err, "select board %s", boardID)
	}
	return store.Decode(payload)
}

func (s *Store) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	data, err := store.Encode(snap)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO boards(id, payload) VALUES(?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		boardID, data); err != nil {
		return store.Storage(err, "upsert board %s", boardID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, boardID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, boardID); err != nil {
		return store.Storage(err, "delete board %s", boardID)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM boards ORDER BY id`)
	if err != nil {
		return nil, store.Storage(err, "select boards")
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, store.Storage(err, "scan board id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storage(err, "iterate boards")
	}
	return ids, nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database path.
func (s *Store) Path() string { return s.path }

var _ store.Store = (*Store)(nil)
