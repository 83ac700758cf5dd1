// Package redis stores boards in Redis.
//
// Each board is a string key holding the JSON document. A set indexes the
// saved board ids so List does not have to scan the keyspace.
package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"slices"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "brainboard:"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key. Defaults to DefaultPrefix.
	Prefix string
}

// Store persists boards to Redis.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// New connects to Redis and checks the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewFromClient(client, cfg.Prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) boardKey(boardID string) string { return s.prefix + "board:" + boardID }
func (s *Store) indexKey() string               { return s.prefix + "boards" }

// classify marks connection failures as retryable.
func classify(err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) || stderrors.Is(err, goredis.ErrClosed) {
		return store.Retryable(err)
	}
	return err
}

func (s *Store) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	var data []byte
	err := store.Retry(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.boardKey(boardID)).Bytes()
		if stderrors.Is(err, goredis.Nil) {
			return store.ErrNotFound
		}
		return classify(err)
	})
	if err != nil {
		return layer.Snapshot{}, store.Storage(err, "get board %s", boardID)
	}
	return store.Decode(data)
}

func (s *Store) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	data, err := store.Encode(snap)
	if err != nil {
		return err
	}
	err = store.Retry(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.Set(ctx, s.boardKey(boardID), data, 0)
			p.SAdd(ctx, s.indexKey(), boardID)
			return nil
		})
		return classify(err)
	})
	return store.Storage(err, "set board %s", boardID)
}

func (s *Store) Delete(ctx context.Context, boardID string) error {
	err := store.Retry(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.Del(ctx, s.boardKey(boardID))
			p.SRem(ctx, s.indexKey(), boardID)
			return nil
		})
		return classify(err)
	})
	return store.Storage(err, "delete board %s", boardID)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := store.Retry(ctx, func() error {
		var err error
		ids, err = s.client.SMembers(ctx, s.indexKey()).Result()
		return classify(err)
	})
	if err != nil {
		return nil, store.Storage(err, "list boards")
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) Close() error { return s.client.Close() }

var _ store.Store = (*Store)(nil)
