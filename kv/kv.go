// Package kv provides the key-value client used for all room state. The same
// Store contract is implemented by a direct Redis client, an Upstash-style
// REST client, a proxy client speaking to this server's /api/kv endpoints,
// and an in-memory store for tests and credential-free local play.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Store is the key-value contract. There are no transactions and no
// multi-key atomicity: concurrent writers to the same key are last-write-wins
// with no detection of lost updates.
type Store interface {
	// Get returns the stored string value, or ErrNotFound if absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key if present and returns the number of keys removed.
	// Deleting an absent key is a no-op success returning 0.
	Delete(ctx context.Context, key string) (int64, error)
}
