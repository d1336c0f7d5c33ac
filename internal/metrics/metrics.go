// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is safe to use as a nil pointer, in which case nothing is recorded.
type Recorder struct {
	analyses   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	commentary *prometheus.CounterVec
	liveFetch  *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corrlab_analysis_total",
				Help: "Correlation analyses by outcome",
			},
			[]string{"outcome"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corrlab_source_fallback_total",
				Help: "Live fetches replaced by synthetic data",
			},
			[]string{"source"},
		),
		commentary: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corrlab_commentary_total",
				Help: "Commentaries served, by origin",
			},
			[]string{"source"},
		),
		liveFetch: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corrlab_live_fetch_duration_seconds",
				Help:    "Duration of live provider fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
	}
}

func (r *Recorder) RecordAnalysis(outcome string) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordFallback(source string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordCommentary(source string) {
	if r == nil {
		return
	}
	r.commentary.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordLiveFetch(provider string, seconds float64) {
	if r == nil {
		return
	}
	r.liveFetch.WithLabelValues(provider).Observe(seconds)
}
