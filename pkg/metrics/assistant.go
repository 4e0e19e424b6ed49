package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AssistantMetrics records extraction and dispatch outcomes for the
// natural-language assistant.
type AssistantMetrics struct {
	extractionDuration *prometheus.HistogramVec
	actions            *prometheus.CounterVec
	resolutions        *prometheus.CounterVec
}

// NewAssistantMetrics registers the assistant metrics on the provided registerer.
func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	if reg == nil {
		return &AssistantMetrics{}
	}
	extractionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assistant_extraction_duration_seconds",
		Help:    "Duration of LLM intent extraction calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_actions_total",
		Help: "Dispatched assistant actions by kind and outcome.",
	}, []string{"action", "outcome"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_resolutions_total",
		Help: "Watch reference resolutions by strategy.",
	}, []string{"strategy"})
	reg.MustRegister(extractionDuration, actions, resolutions)
	return &AssistantMetrics{
		extractionDuration: extractionDuration,
		actions:            actions,
		resolutions:        resolutions,
	}
}

// ObserveExtraction records one extraction call.
func (m *AssistantMetrics) ObserveExtraction(outcome string, duration time.Duration) {
	if m == nil || m.extractionDuration == nil {
		return
	}
	m.extractionDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAction counts a dispatched action by kind and outcome.
func (m *AssistantMetrics) IncAction(action, outcome string) {
	if m == nil || m.actions == nil {
		return
	}
	m.actions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// IncResolution counts which strategy resolved a watch reference.
func (m *AssistantMetrics) IncResolution(strategy string) {
	if m == nil || m.resolutions == nil {
		return
	}
	m.resolutions.WithLabelValues(normalizeLabel(strategy)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
