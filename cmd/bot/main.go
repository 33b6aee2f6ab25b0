package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"verse_channel_bot/internal/app"
	"verse_channel_bot/internal/domain/cursor"
	"verse_channel_bot/internal/infra/config"
	idb "verse_channel_bot/internal/infra/database"
	"verse_channel_bot/internal/infra/dataset"
	"verse_channel_bot/internal/infra/logger"
	"verse_channel_bot/internal/infra/metrics"
	"verse_channel_bot/internal/infra/scheduler"
	"verse_channel_bot/internal/infra/state"
	"verse_channel_bot/internal/infra/telegram"
)

func main() {
	os.Exit(run())
}

// run returns the process exit status: 0 when a verse was posted (or the
// scheduler shut down cleanly), 1 otherwise.
func run() int {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Could not load application configuration")
		return 1
	}
	logger.Init(cfg)
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"run_mode":    cfg.RunMode,
		"backend":     cfg.StateBackend,
	}).Info("Starting verse channel bot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tmpl, err := config.LoadMessageTemplate(cfg.MessageConfigFile)
	if err != nil {
		log.WithError(err).Error("Could not load message template")
		return 1
	}

	repo, closeRepo, err := buildRepository(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Could not initialize state backend")
		return 1
	}
	defer closeRepo.Close()

	client, err := telegram.NewTelebotClient(telegram.Config{
		APIURL:    cfg.TelegramAPIURL,
		Token:     cfg.BotToken,
		ChannelID: cfg.ChannelID,
		Timeout:   cfg.RequestTimeout,
	}, log)
	if err != nil {
		log.WithError(err).Error("Could not create Telegram client")
		return 1
	}

	recorder := metrics.NewRecorder()
	store := app.NewCursorStore(repo, recorder, log)
	postService := app.NewPostService(dataset.NewCSVLoader(cfg.CSVFilePath), store, client, tmpl, recorder, log)

	if cfg.RunMode == config.RunModeSchedule {
		return runScheduled(ctx, cfg, postService, recorder, log)
	}
	return runOnce(ctx, cfg, postService, recorder, log)
}

func runOnce(ctx context.Context, cfg *config.AppConfig, poster app.Poster, recorder *metrics.Recorder, log *logrus.Logger) int {
	out, err := poster.PostNext(ctx)

	if cfg.MetricsTextfile != "" {
		if werr := recorder.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			log.WithError(werr).Warn("Could not write metrics textfile")
		}
	}

	if err != nil {
		log.WithField("last_phase", out.LastPhase).Error("Failed to post verse")
		return 1
	}
	log.WithField("next_cursor", out.NextCursor).Info("Verse posted successfully")
	return 0
}

func runScheduled(ctx context.Context, cfg *config.AppConfig, poster app.Poster, recorder *metrics.Recorder, log *logrus.Logger) int {
	sched := scheduler.NewPostScheduler(poster, cfg.CronSpec, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Error("Could not start scheduler")
		return 1
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down application...")
	sched.Stop()
	log.Info("Application shut down gracefully")
	return 0
}

// buildRepository wires the configured cursor backend. The returned closer
// releases any connection the backend holds.
func buildRepository(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (cursor.Repository, io.Closer, error) {
	switch cfg.StateBackend {
	case config.BackendFile:
		return state.NewFileRepository(cfg.StateFile), nopCloser{}, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return state.NewRedisRepository(rdb, cfg.RedisKey), rdb, nil

	case config.BackendPostgres:
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := idb.NewPostgresCursorRepository(db, cfg.StateName)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	case config.BackendGitHub:
		fetcher := state.NewGitHubFetcher(state.GitHubConfig{
			APIURL:     cfg.GitHubAPIURL,
			Repository: cfg.GitHubRepository,
			Token:      cfg.GitHubToken,
			Path:       cfg.StateFile,
			Ref:        cfg.GitHubRef,
			Timeout:    cfg.RequestTimeout,
		}, log)
		return state.NewSplitRepository(fetcher, state.NewFileRepository(cfg.StateFile)), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
