package domain

import "context"

// AddressStore is the durable cache of resolved addresses.
//
// Records are insert-only and keyed uniquely: a duplicate insert must leave
// the existing record intact rather than fail or overwrite. Absence on
// lookup is not an error.
type AddressStore interface {
	// Lookup returns the cached record for key, or (nil, nil) when absent.
	Lookup(ctx context.Context, key string) (*CachedAddress, error)

	// Insert persists a new record. Inserting an existing key is a no-op.
	Insert(ctx context.Context, rec CachedAddress) error
}

// NoopStore is the variant selected when no persistence backend is
// configured: every lookup misses and every insert succeeds without effect,
// so the pipeline control flow never special-cases a missing database.
type NoopStore struct{}

func (NoopStore) Lookup(context.Context, string) (*CachedAddress, error) { return nil, nil }

func (NoopStore) Insert(context.Context, CachedAddress) error { return nil }
