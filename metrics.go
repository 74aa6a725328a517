package slidegen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "slidegen"

// Request outcomes recorded by Metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeNoSlides = "no_slides"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

// Fallback reasons recorded by Metrics.
const (
	FallbackEmptyStream = "empty_stream"
	FallbackStreamError = "stream_error"
	FallbackNoStreaming = "streaming_disabled"
)

// Metrics holds the Prometheus collectors for generation requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	slides    prometheus.Counter
	fragments prometheus.Counter
	fallbacks *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Generation requests by outcome.",
		}, []string{"outcome"}),
		slides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slides_emitted_total",
			Help:      "Slides emitted to the presentation layer.",
		}),
		fragments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stream_fragments_total",
			Help:      "Fragments received from streaming responses.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fallbacks_total",
			Help:      "Single-request fallbacks by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Wall-clock duration of generation requests.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.slides, m.fragments, m.fallbacks, m.duration)
	}
	return m
}

func (m *Metrics) observeRequest(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) slideEmitted() {
	if m == nil {
		return
	}
	m.slides.Inc()
}

func (m *Metrics) fragmentReceived() {
	if m == nil {
		return
	}
	m.fragments.Inc()
}

func (m *Metrics) fallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}
