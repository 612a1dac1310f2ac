// internal/kvstore/interface.go
package kvstore

import "context"

// Store defines the interface for key-value persistence backends. It
// stands in for the browser-style local storage the stores persist to:
// sessions live under the "user" key, watchlists under "watchlist-{id}".
type Store interface {
	// Get retrieves the value for a key. Returns core.ErrKeyNotFound
	// when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
