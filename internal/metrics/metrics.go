// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus instrumentation for the search
// controller: submissions, settled outcomes, stale discards, and call latency.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

const namespace = "arxiv_researcher"

// Recorder holds the search collectors. A nil *Recorder is valid and
// records nothing, so callers never need to check for it.
type Recorder struct {
	submissions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	stale       prometheus.Counter
	latency     *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_submissions_total",
				Help:      "Accepted search submissions",
			},
			[]string{"superseding"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_outcomes_total",
				Help:      "Settled searches by outcome kind",
			},
			[]string{"outcome"},
		),
		stale: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_stale_responses_total",
				Help:      "Responses discarded because a newer request superseded them",
			},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_call_duration_seconds",
				Help:      "Duration of settled search calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(r.submissions, r.outcomes, r.stale, r.latency)
	}
	return r
}

// Submitted counts an accepted submission. superseding is true when the
// submission replaced a request that was still pending.
func (r *Recorder) Submitted(superseding bool) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(strconv.FormatBool(superseding)).Inc()
}

// Settled counts a settled request and observes its call duration.
func (r *Recorder) Settled(kind types.OutcomeKind, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(string(kind)).Inc()
	r.latency.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Stale counts a discarded response.
func (r *Recorder) Stale() {
	if r == nil {
		return
	}
	r.stale.Inc()
}
