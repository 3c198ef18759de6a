package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New(prometheus.NewRegistry())

	require.NotNil(t, m)
	assert.NotNil(t, m.EventsTotal)
	assert.NotNil(t, m.HandledTotal)
	assert.NotNil(t, m.LookupsTotal)
	assert.NotNil(t, m.LookupDurationSeconds)
}

func TestRecord(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordEvent("slack", "direct_mention", "delegate")
	m.RecordEvent("slack", "direct_mention", "delegate")
	m.RecordHandled("telegram", "error")
	m.RecordLookup("found", 0.2)
	m.RecordLookup("skipped", 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.EventsTotal.WithLabelValues("slack", "direct_mention", "delegate")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HandledTotal.WithLabelValues("telegram", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("found")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("skipped")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.LookupDurationSeconds))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordEvent("slack", "channel_join", "reply")
		m.RecordHandled("slack", "ok")
		m.RecordLookup("error", 1)
	})
}
