// internal/domain/cursor/repository.go
package cursor

//go:generate mockgen -package mocks -destination mocks/mock_repository.go verse_channel_bot/internal/domain/cursor Repository

import (
	"context"
	"errors"
)

// ErrNotFound means the backend holds no state yet.
var ErrNotFound = errors.New("cursor state not found")

// ErrUnavailable means the backend is not configured for reading
// (for example, credentials are absent).
var ErrUnavailable = errors.New("cursor state backend unavailable")

// Fetcher reads the last persisted state.
type Fetcher interface {
	Fetch(ctx context.Context) (State, error)
}

// Persister durably records state, replacing whatever was there.
type Persister interface {
	Persist(ctx context.Context, state State) error
}

// Repository is the persistence boundary for the cursor.
type Repository interface {
	Fetcher
	Persister
}
