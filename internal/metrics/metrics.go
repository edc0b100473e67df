// Package metrics exposes gameplay counters over Prometheus.
//
// A nil *Recorder is valid and records nothing, so local play can run
// without a registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/blockdrop/internal/core"
)

const namespace = "blockdrop"

// Recorder owns the game metrics and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	events   *prometheus.CounterVec
	runs     *prometheus.CounterVec
	scores   *prometheus.HistogramVec
	maxTiles *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// New creates a Recorder backed by a fresh registry that also carries the
// Go runtime and process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Gameplay events by game and kind (launch, land, merge, drop, bounce, shift).",
		}, []string{"game", "kind"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_finished_total",
			Help:      "Games that reached game over.",
		}, []string{"game"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_score",
			Help:      "Final score of finished runs.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}, []string{"game"}),
		maxTiles: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_max_tile",
			Help:      "Largest tile reached in finished runs.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		}, []string{"game"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected SSH sessions.",
		}),
	}

	r.registry.MustRegister(
		r.events, r.runs, r.scores, r.maxTiles, r.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveEvents counts the events produced by one game step.
func (r *Recorder) ObserveEvents(game string, events []core.Event) {
	if r == nil {
		return
	}
	for _, e := range events {
		r.events.WithLabelValues(game, string(e.Kind)).Inc()
	}
}

// RunFinished records a game that reached game over.
func (r *Recorder) RunFinished(game string, score, maxTile int) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(game).Inc()
	r.scores.WithLabelValues(game).Observe(float64(score))
	if maxTile > 0 {
		r.maxTiles.WithLabelValues(game).Observe(float64(maxTile))
	}
}

// SessionStarted increments the active session gauge.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// SessionEnded decrements the active session gauge.
func (r *Recorder) SessionEnded() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}
