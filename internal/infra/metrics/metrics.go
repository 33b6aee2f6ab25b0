package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Result labels for the posts counter.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder owns the bot's collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	postsTotal    *prometheus.CounterVec
	cursor        prometheus.Gauge
	datasetSize   prometheus.Gauge
	lastSuccess   prometheus.Gauge
	stateFallback prometheus.Counter
}

// NewRecorder creates and registers all collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		postsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verse_bot_posts_total",
				Help: "Post cycles by result and the phase they ended in",
			},
			[]string{"result", "phase"},
		),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "verse_bot_cursor",
			Help: "Cursor value persisted after the last successful post",
		}),
		datasetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "verse_bot_dataset_size",
			Help: "Number of verses in the loaded dataset",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "verse_bot_last_success_timestamp_seconds",
			Help: "Unix time of the last successful post",
		}),
		stateFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verse_bot_state_fallback_total",
			Help: "Cursor loads that fell back to the default index",
		}),
	}

	r.registry.MustRegister(r.postsTotal, r.cursor, r.datasetSize, r.lastSuccess, r.stateFallback)

	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) ObservePost(phase string, nextCursor, total int, err error) {
	r.datasetSize.Set(float64(total))
	if err != nil {
		r.postsTotal.WithLabelValues(ResultFailure, phase).Inc()
		return
	}
	r.postsTotal.WithLabelValues(ResultSuccess, phase).Inc()
	r.cursor.Set(float64(nextCursor))
	r.lastSuccess.Set(float64(time.Now().Unix()))
}

func (r *Recorder) ObserveStateFallback() {
	r.stateFallback.Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("Metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
