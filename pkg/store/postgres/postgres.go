// Package postgres stores boards in a Postgres table with a JSONB payload.
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

const (
	driver = "pgx"
	// DefaultDSN is used when New is given an empty DSN.
	DefaultDSN = "postgres://localhost/brainboard?sslmode=disable"
)

// Store persists boards to the boards table.
type Store struct {
	db *sql.DB
}

// New connects, pings and ensures the boards table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure boards table: %w", err)
	}
	return nil
}

// classify marks errors the server never acted on as retryable.
func classify(err error) error {
	if err != nil && pgconn.SafeToRetry(err) {
		return store.Retryable(err)
	}
	return err
}

func (s *Store) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	var payload []byte
	err := store.Retry(ctx, func() error {
		err := s.db.QueryRowContext(ctx, `SELECT payload FROM boards WHERE id = $1`, boardID).Scan(&payload)
		if stderrors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return classify(err)
	})
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
	err = store.Retry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO boards (id, payload) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
			boardID, string(data))
		return classify(err)
	})
	return store.Storage(err, "upsert board %s", boardID)
}

func (s *Store) Delete(ctx context.Context, boardID string) error {
	err := store.Retry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
		return classify(err)
	})
	return store.Storage(err, "delete board %s", boardID)
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

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

var _ store.Store = (*Store)(nil)
