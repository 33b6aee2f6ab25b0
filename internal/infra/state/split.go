package state

import (
	"context"

	"verse_channel_bot/internal/domain/cursor"
)

// SplitRepository reads state from one place and writes it to another.
// The GitHub backend pairs a remote reader with a local file; committing
// that file back upstream is the job of the surrounding workflow.
type SplitRepository struct {
	fetcher   cursor.Fetcher
	persister cursor.Persister
}

var _ cursor.Repository = (*SplitRepository)(nil)

func NewSplitRepository(f cursor.Fetcher, p cursor.Persister) *SplitRepository {
	return &SplitRepository{fetcher: f, persister: p}
}

func (r *SplitRepository) Fetch(ctx context.Context) (cursor.State, error) {
	return r.fetcher.Fetch(ctx)
}

func (r *SplitRepository) Persist(ctx context.Context, st cursor.State) error {
	return r.persister.Persist(ctx, st)
}
