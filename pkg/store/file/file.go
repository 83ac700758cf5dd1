// Package file stores each board as a JSON file in a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

const ext = ".json"

// Store is a file-based board store for CLI use.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns ~/.config/brainboard/boards.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "brainboard", "boards"), nil
}

// New creates a store rooted at baseDir, creating the directory if needed.
// If baseDir is empty, DefaultDir is used.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) boardPath(boardID string) (string, error) {
	if boardID == "" || strings.ContainsAny(boardID, `/\`) || boardID == "." || boardID == ".." {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid board id %q", boardID)
	}
	return filepath.Join(s.baseDir, boardID+ext), nil
}

func (s *Store) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	path, err := s.boardPath(boardID)
	if err != nil {
		return layer.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layer.Snapshot{}, store.ErrNotFound
		}
		return layer.Snapshot{}, store.Storage(err, "read board %s", boardID)
	}
	return store.Decode(data)
}

func (s *Store) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	path, err := s.boardPath(boardID)
	if err != nil {
		return err
	}
	data, err := store.Encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write a sibling file and rename it into place.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return store.Storage(err, "write board %s", boardID)
	}
	if err := os.Rename(tmp, path); err != nil {
		return store.Storage(err, "replace board %s", boardID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, boardID string) error {
	path, err := s.boardPath(boardID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return store.Storage(err, "remove board %s", boardID)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, store.Storage(err, "read board dir")
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ext))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) Close() error { return nil }

// Path returns the base directory for board files.
func (s *Store) Path() string {
	return s.baseDir
}

var _ store.Store = (*Store)(nil)
