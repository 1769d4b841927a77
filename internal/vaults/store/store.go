// Package store provides the durable keyed collection of vault records.
// A store holds serialized records in insertion order and owns no business
// logic; the repository layer does all translation and lock-state derivation.
package store

import "context"

// Record is one serialized vault record (JSON).
type Record []byte

// VaultStore is the persistence boundary consumed by the vault repository.
// Only list-all and append-one are exposed; records are never updated or
// deleted through this interface. Implementations must guarantee that a
// concurrent GetAll and Append see either a fully-before or fully-after view
// of the appended record.
type VaultStore interface {
	// GetAll returns every record for the given user scope in insertion order.
	GetAll(ctx context.Context, userID string) ([]Record, error)

	// Append adds one record to the user's collection.
	Append(ctx context.Context, userID string, rec Record) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}
