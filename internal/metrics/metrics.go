package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the Prometheus collectors for scoring, generation and HTTP traffic.
type Metrics struct {
	llmRequests        *prometheus.CounterVec
	generationAttempts *prometheus.CounterVec
	confidenceScores   *prometheus.CounterVec
	semanticFallbacks  prometheus.Counter
	finalScore         prometheus.Histogram
	httpDuration       *prometheus.HistogramVec
}

// MustNewMetrics constructs and registers the collectors. Tests pass a fresh
// prometheus.NewRegistry(); a duplicate registration panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icebreak",
			Name:      "llm_requests_total",
			Help:      "LLM completion calls by operation and outcome.",
		}, []string{"operation", "status"}),
		generationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icebreak",
			Name:      "generation_attempts_total",
			Help:      "Topic generation attempts by outcome.",
		}, []string{"outcome"}),
		confidenceScores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icebreak",
			Name:      "confidence_scores_total",
			Help:      "Confidence scores returned, by effective mode.",
		}, []string{"mode"}),
		semanticFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "icebreak",
			Name:      "semantic_fallbacks_total",
			Help:      "Full-mode requests that degraded to client-only scoring.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "icebreak",
			Name:      "final_score",
			Help:      "Distribution of final confidence scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "icebreak",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	reg.MustRegister(
		m.llmRequests,
		m.generationAttempts,
		m.confidenceScores,
		m.semanticFallbacks,
		m.finalScore,
		m.httpDuration,
	)
	return m
}

// ObserveLLMRequest counts one completion call
func (m *Metrics) ObserveLLMRequest(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.llmRequests.WithLabelValues(operation, status).Inc()
}

// ObserveGenerationAttempt counts one generation attempt; outcome is ok, error or empty
func (m *Metrics) ObserveGenerationAttempt(outcome string) {
	if m == nil {
		return
	}
	m.generationAttempts.WithLabelValues(outcome).Inc()
}

// ObserveConfidence records a returned confidence result
func (m *Metrics) ObserveConfidence(mode string, finalScore int) {
	if m == nil {
		return
	}
	m.confidenceScores.WithLabelValues(mode).Inc()
	m.finalScore.Observe(float64(finalScore))
}

// ObserveSemanticFallback counts a degrade to client-only scoring
func (m *Metrics) ObserveSemanticFallback() {
	if m == nil {
		return
	}
	m.semanticFallbacks.Inc()
}

// ObserveHTTP records a served request
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
