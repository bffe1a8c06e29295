package store

import "context"

// Store is the opaque key-value capability used for diary record durability.
// Implementations own connection lifecycle; callers never see a connection
type Store interface {
	// Put persists a value under the given key
	Put(ctx context.Context, key, value string) error

	// Keys returns all stored keys starting with the given prefix
	Keys(ctx context.Context, prefix string) ([]string, error)

	// MultiGet fetches the values for all given keys in one batched read.
	// The result has one entry per requested key; missing or expired keys
	// yield a nil entry at their position
	MultiGet(ctx context.Context, keys []string) ([]*string, error)
}
