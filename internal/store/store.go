// Package store defines the key-value persistence used by the booking state
// manager.  Keys and values are plain strings, mirroring browser-local
// storage, and every store is scoped to a single browser profile.
package store

import (
	"context"
	"errors"
)

// Persisted keys.  The value shapes are part of the external contract.
const (
	KeySelectedSeats      = "selectedSeats"      // JSON array of ordinals
	KeySoldSeats          = "soldSeats"          // JSON array of ordinals
	KeySelectedMovieIndex = "selectedMovieIndex" // integer string
	KeySelectedMoviePrice = "selectedMoviePrice" // numeric string
)

// ErrNotFound is returned by Get when the key has never been written or has
// been removed.
var ErrNotFound = errors.New("store: key not found")

// Batch groups writes that must be applied together.  A key must not appear
// in both Set and Remove.
type Batch struct {
	Set    map[string]string
	Remove []string
}

// Empty reports whether the batch carries no writes.
func (b Batch) Empty() bool { return len(b.Set) == 0 && len(b.Remove) == 0 }

// Store is a profile-scoped string key-value store.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Apply writes the whole batch or nothing.
	Apply(ctx context.Context, b Batch) error
}

// Factory returns the store of one profile.
type Factory func(profileID string) Store
