package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAssistantMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)

	m.IncAction("add_to_cart", "success")
	m.IncAction("add_to_cart", "success")
	m.IncAction("create_order", "error")
	m.IncResolution("fuzzy_search")
	m.ObserveExtraction("success", 150*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.actions.WithLabelValues("add_to_cart", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.actions.WithLabelValues("create_order", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.resolutions.WithLabelValues("fuzzy_search")))
}

func TestAssistantMetrics_NilSafe(t *testing.T) {
	var m *AssistantMetrics
	m.IncAction("add_to_cart", "success")
	m.IncResolution("anaphora")
	m.ObserveExtraction("error", time.Second)

	empty := NewAssistantMetrics(nil)
	empty.IncAction("", "")
	assert.NotNil(t, empty)
}
