package db

import (
	"context"
	"time"
)

// Store is the database facade used by the report host.
type Store interface {
	Pinger
	KVStore
	Scanner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides batched read access to plain string values.
type KVStore interface {
	// MGet returns one value per key, in key order. Missing keys yield nil.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
}

// Scanner iterates the keyspace.
type Scanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}
