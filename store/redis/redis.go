/*
Package redis provides a Redis-backed implementation of personnel.KeyValueStore.

PURPOSE:
  Lets several server instances (or a restarted container without a volume)
  share the record slot. The slot is one Redis string; Put is a plain SET,
  so concurrent writers resolve as last-writer-wins, same as every other
  backend.

USAGE:
  kv, err := redis.New(ctx, redis.Options{Addr: "localhost:6379"})
  if err != nil {
      log.Fatal(err)
  }
  defer kv.Close()

SEE ALSO:
  - personnel/store.go: Interface definition
  - store/sqlite/sqlite.go: Default single-node backend
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/warp/asn-monitor/personnel"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key.
	Prefix string

	DialTimeout time.Duration
}

// Store implements personnel.KeyValueStore using Redis.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewFromClient(client, opts.Prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client goredis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w: %v", key, personnel.ErrStorage, err)
	}
	return v, true, nil
}

// Put stores value under key with no expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis put %q: %w: %v", key, personnel.ErrStorage, err)
	}
	return nil
}
