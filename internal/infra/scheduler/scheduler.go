package scheduler

import (
	"context"
	"fmt"
	"time"
	"verse_channel_bot/internal/app" // For Poster interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 5 * time.Minute

// PostScheduler triggers post cycles on a cron spec. A cycle still running
// when the next tick fires causes that tick to be skipped, so cycles never
// overlap within one process.
type PostScheduler struct {
	cronEngine *cron.Cron
	poster     app.Poster
	logger     logrus.FieldLogger
	cronSpec   string
	jobTimeout time.Duration
}

func NewPostScheduler(poster app.Poster, cronSpec string, logger logrus.FieldLogger) *PostScheduler {
	log := logger.WithField("component", "scheduler")
	cronLogger := cron.PrintfLogger(log)
	return &PostScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		poster:     poster,
		logger:     log,
		cronSpec:   cronSpec, // e.g., "0 * * * *" (top of every hour)
		jobTimeout: defaultJobTimeout,
	}
}

func (s *PostScheduler) Start() error {
	s.logger.Info("Starting post scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, s.runCycle)
	if err != nil {
		return fmt.Errorf("could not add post cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Post scheduler started")
	return nil
}

func (s *PostScheduler) runCycle() {
	s.logger.Info("Cron job triggered for post cycle")
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	out, err := s.poster.PostNext(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("last_phase", out.LastPhase).Error("Post cycle failed")
		return
	}
	s.logger.WithField("next_cursor", out.NextCursor).Info("Post cycle completed")
}

func (s *PostScheduler) Stop() {
	s.logger.Info("Stopping post scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Post scheduler gracefully stopped")
}
