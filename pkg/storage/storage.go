package storage

import "context"

// KeyValueStore is the persistence port behind a visitor's session. Values are opaque text.
// Implementations scope every key to the session id.
type KeyValueStore interface {
	// Get returns the value stored under key, and false when there is none.
	Get(ctx context.Context, sessionID, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, sessionID, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, sessionID, key string) error
}
