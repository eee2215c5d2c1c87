package interfaces

import (
	"context"

	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------
// ICacheStore defines the contract for the durable key-value cache.
// -----------------------------------------------------------------------------

type ICacheStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the schema. Idempotent and safe to call from
	// multiple goroutines; calls after the first are no-ops.
	Initialize() error

	// -----------------------------------------------------------------------------

	// Get returns the entry for a key, or nil when the key is absent.
	// Absence is not an error.
	Get(ctx context.Context, key string) (*models.MCacheEntry, error)

	// -----------------------------------------------------------------------------

	// Put upserts an entry, overwriting any previous value for the key.
	Put(ctx context.Context, entry models.MCacheEntry) error

	// -----------------------------------------------------------------------------

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// -----------------------------------------------------------------------------

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// -----------------------------------------------------------------------------

	// Close the underlying store.
	Close() error
}
