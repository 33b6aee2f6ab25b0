package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"verse_channel_bot/internal/domain/cursor"
	domainTelegram "verse_channel_bot/internal/domain/telegram"
	"verse_channel_bot/internal/domain/verse"
)

// Phase is a step of a post cycle.
type Phase string

const (
	PhaseStart     Phase = "START"
	PhaseLoaded    Phase = "LOADED"
	PhaseConnected Phase = "CONNECTED"
	PhaseFormatted Phase = "FORMATTED"
	PhaseSent      Phase = "SENT"
	PhaseAdvanced  Phase = "ADVANCED"
	PhaseDone      Phase = "DONE"
	PhaseAborted   Phase = "ABORTED"
)

var (
	ErrEmptyDataset = errors.New("no verses data available")
	ErrNotConnected = errors.New("failed to connect to Telegram bot")
	ErrSendFailed   = errors.New("failed to send message to Telegram")
)

// Poster runs one post cycle.
type Poster interface {
	PostNext(ctx context.Context) (Outcome, error)
}

// Outcome describes how far a cycle got.
type Outcome struct {
	Phase      Phase // DONE on success, ABORTED otherwise
	LastPhase  Phase // last phase completed before finishing or aborting
	Index      int   // verse index selected after wraparound
	NextCursor int   // cursor persisted after the post
	Total      int
}

// PostService posts the verse under the cursor and advances it.
type PostService struct {
	loader   verse.Loader
	store    *CursorStore
	client   domainTelegram.Client
	template verse.Template
	observer Observer
	logger   logrus.FieldLogger
}

var _ Poster = (*PostService)(nil)

func NewPostService(
	loader verse.Loader,
	store *CursorStore,
	client domainTelegram.Client,
	tmpl verse.Template,
	observer Observer,
	logger logrus.FieldLogger,
) *PostService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &PostService{
		loader:   loader,
		store:    store,
		client:   client,
		template: tmpl,
		observer: observer,
		logger:   logger.WithField("component", "post_service"),
	}
}

// PostNext runs START→LOADED→CONNECTED→FORMATTED→SENT→ADVANCED→DONE.
// Any failure ends the cycle in ABORTED without touching the cursor.
// A failed state write after a successful send is logged and ignored.
func (s *PostService) PostNext(ctx context.Context) (out Outcome, err error) {
	log := s.logger.WithField("run_id", uuid.NewString())
	out = Outcome{Phase: PhaseStart, LastPhase: PhaseStart}

	advance := func(p Phase) {
		out.LastPhase = p
		out.Phase = p
		log.WithField("phase", p).Debug("Phase reached")
	}

	defer func() {
		if err != nil {
			out.Phase = PhaseAborted
			log.WithFields(logrus.Fields{
				"phase":      PhaseAborted,
				"last_phase": out.LastPhase,
			}).WithError(err).Error("Post cycle aborted")
		}
		s.observer.ObservePost(string(out.LastPhase), out.NextCursor, out.Total, err)
	}()

	verses, err := s.loader.Load()
	if err != nil {
		return out, fmt.Errorf("load dataset: %w", err)
	}
	if len(verses) == 0 {
		return out, ErrEmptyDataset
	}
	out.Total = len(verses)
	log.WithField("verses", out.Total).Info("Loaded verses from dataset")

	current := s.store.Load(ctx)
	advance(PhaseLoaded)

	if !s.client.CheckConnectivity(ctx) {
		return out, ErrNotConnected
	}
	advance(PhaseConnected)

	index, wrapped := cursor.Wrap(current, out.Total)
	if wrapped {
		log.WithField("stored_index", current).Info("Reached end of dataset, restarting from beginning")
	}
	out.Index = index
	selected := verses[index]

	text, err := verse.Format(selected, index, out.Total, s.template)
	if err != nil {
		return out, fmt.Errorf("format verse %d: %w", index, err)
	}
	advance(PhaseFormatted)

	if !s.client.SendMessage(ctx, text) {
		return out, ErrSendFailed
	}
	advance(PhaseSent)

	log.WithFields(logrus.Fields{
		"position": fmt.Sprintf("%d/%d", index+1, out.Total),
		"verse":    selected.Reference(),
	}).Info("Posted verse")

	// The increment applies to the wrapped index; an end-of-dataset value is
	// stored as-is and wrapped on the next load.
	out.NextCursor = index + 1
	if saveErr := s.store.Save(ctx, out.NextCursor, out.Total); saveErr != nil {
		log.WithError(saveErr).Warn("Verse posted but state was not saved; next run may repeat it")
	}
	advance(PhaseAdvanced)

	advance(PhaseDone)
	return out, nil
}
