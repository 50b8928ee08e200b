/*
store.go - Persistence interface for the record set

PURPOSE:
  The record set lives in ONE slot of an external key-value store. The
  whole array is written on every mutation; there are no partial writes,
  no versions and no merge. Last writer wins.

CONTRACT:
  - Get returns (nil, false, nil) when the key has never been written.
  - Put replaces the value atomically from the reader's point of view.
  - Errors are reported but the Registry never fails a mutation because
    of them: storage failure is an accepted data-loss risk.

IMPLEMENTATIONS:
  - personnel/store/memory.go: In-memory for testing
  - store/sqlite/sqlite.go: SQLite file (default)
  - store/redis/redis.go: Redis

SEE ALSO:
  - registry.go: the only caller
  - codec.go: the value format
*/
package personnel

import "context"

// DefaultStorageKey is the slot the record array is stored under.
const DefaultStorageKey = "asn-monitor/records"

// KeyValueStore is a flat key-value slot.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
