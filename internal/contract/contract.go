// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/nfi-health/assess/schema"
)

// ErrRecordNotFound is returned by a RecordStore when no record has the requested ID.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore defines the persistence collaborator of an editing session.
// This allows the session and CLI layers to be tested without a database.
type RecordStore interface {
	// Save inserts rec with a generated ID when id is empty, or updates the record with that ID.
	// It returns the stored record including its ID and timestamps.
	Save(ctx context.Context, rec schema.Record, id string) (schema.Record, error)

	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (schema.Record, error)

	// List returns records matching the filter, most recently updated first.
	List(ctx context.Context, filter schema.RecordFilter) ([]schema.Record, error)

	// GetStatus returns status information about the record store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager defines the interface for managing record stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}

// IdentityProvider supplies the current actor attached to saved records.
type IdentityProvider interface {
	CurrentActor(ctx context.Context) (schema.Actor, error)
}

// StaticIdentity is an IdentityProvider returning a fixed actor.
type StaticIdentity schema.Actor

// CurrentActor returns the fixed actor.
func (s StaticIdentity) CurrentActor(_ context.Context) (schema.Actor, error) {
	return schema.Actor(s), nil
}

// Compile-time check.
var _ IdentityProvider = StaticIdentity{}
