// Package store persists board documents.
//
// A [Store] maps board ids to [layer.Snapshot] documents in the persisted
// schema { layers, layerIds }. Implementations for different backends live
// in subpackages:
//   - file: one JSON file per board, for the CLI
//   - sqlite: a single table in a local database file
//   - redis: one key per board plus an index set
//   - mongo: one document per board
//   - postgres: a JSONB column per board
//
// [NewMemory] and [NewNull] cover tests and ephemeral servers.
//
// Every backend validates documents on load, so a corrupt or hand-edited
// document surfaces as an INVALID_DOCUMENT error instead of a broken board.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned by Load when a board has never been saved.
	ErrNotFound = stderrors.New("not found")

	// ErrClosed is returned after Close.
	ErrClosed = stderrors.New("store closed")
)

// Store is the interface for board persistence backends.
type Store interface {
	// Load returns the board's document, or ErrNotFound.
	Load(ctx context.Context, boardID string) (layer.Snapshot, error)

	// Save replaces the board's document.
	Save(ctx context.Context, boardID string, snap layer.Snapshot) error

	// Delete removes the board. Deleting a missing board is not an error.
	Delete(ctx context.Context, boardID string) error

	// List returns the ids of all saved boards in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// Encode serialises a document in the persisted schema.
func Encode(snap layer.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return data, nil
}

// Decode parses and validates a persisted document.
func Decode(data []byte) (layer.Snapshot, error) {
	var snap layer.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if errors.GetCode(err) != "" {
			return layer.Snapshot{}, err
		}
		return layer.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if err := snap.Validate(); err != nil {
		return layer.Snapshot{}, err
	}
	return snap, nil
}

// Hash returns a stable SHA-256 fingerprint of a document. It is used as the
// HTTP entity tag.
func Hash(snap layer.Snapshot) string {
	data, _ := json.Marshal(snap)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RetryableError marks a backend error as transient.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return stderrors.As(err, &re)
}

// RetryDelay is the first backoff delay used by Retry. Tests shorten it.
var RetryDelay = 100 * time.Millisecond

// Retry calls fn up to 3 times with exponential backoff. Only errors wrapped
// with Retryable trigger another attempt.
func Retry(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := RetryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// Storage wraps a backend failure with the STORAGE_ERROR code, leaving
// ErrNotFound and already coded errors untouched.
func Storage(err error, format string, args ...any) error {
	if err == nil || stderrors.Is(err, ErrNotFound) || errors.GetCode(err) != "" {
		return err
	}
	var re *RetryableError
	if stderrors.As(err, &re) {
		err = re.Err
	}
	return errors.Wrap(errors.ErrCodeStorage, err, format, args...)
}
