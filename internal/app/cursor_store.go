package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"verse_channel_bot/internal/domain/cursor"
)

// CursorStore applies the recovery rules around a cursor.Repository:
// reads never fail (they fall back to 0) and write failures are reported
// but left to the caller to tolerate.
type CursorStore struct {
	repo     cursor.Repository
	observer Observer
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewCursorStore(repo cursor.Repository, observer Observer, logger logrus.FieldLogger) *CursorStore {
	if observer == nil {
		observer = nopObserver{}
	}
	return &CursorStore{
		repo:     repo,
		observer: observer,
		logger:   logger.WithField("component", "cursor_store"),
		now:      time.Now,
	}
}

// Load returns the persisted cursor, or 0 when nothing usable is stored.
func (s *CursorStore) Load(ctx context.Context) int {
	st, err := s.repo.Fetch(ctx)
	switch {
	case err == nil:
		s.logger.WithField("current_index", st.CurrentIndex).Info("Loaded state")
		return st.CurrentIndex
	case errors.Is(err, cursor.ErrUnavailable):
		s.logger.WithError(err).Info("State credentials not available, starting from beginning")
	case errors.Is(err, cursor.ErrNotFound):
		s.logger.Info("No previous state found, starting from beginning")
	default:
		s.logger.WithError(err).Error("Error loading state, starting from beginning")
	}
	s.observer.ObserveStateFallback()
	return 0
}

// Save records index as the next verse to post.
func (s *CursorStore) Save(ctx context.Context, index, total int) error {
	st := cursor.State{
		CurrentIndex: index,
		LastRun:      s.now(),
		TotalVerses:  total,
	}
	if err := s.repo.Persist(ctx, st); err != nil {
		s.logger.WithError(err).WithField("current_index", index).Error("Error saving state")
		return fmt.Errorf("save cursor: %w", err)
	}
	s.logger.WithField("current_index", index).Info("Saved state")
	return nil
}
