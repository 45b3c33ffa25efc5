package ports

import (
	"context"

	"cricsaga/internal/domain"
)

// SessionDirectory maps live match ids to match instances. Implementations
// must be safe for concurrent create/lookup/remove; mutation of an individual
// match is serialized by the engine, not the directory.
type SessionDirectory interface {
	// Create registers a new live match. It fails if the id is already taken.
	Create(ctx context.Context, m *domain.Match) error
	// Lookup returns the live match for id, or an error when absent.
	Lookup(ctx context.Context, id string) (*domain.Match, error)
	// Save persists the current state of a live match after a transition.
	Save(ctx context.Context, m *domain.Match) error
	// Remove drops a match from the directory.
	Remove(ctx context.Context, id string) error
	// List returns all live matches.
	List(ctx context.Context) ([]*domain.Match, error)
}
