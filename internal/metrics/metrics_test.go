package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := metrics.NewMetrics(reg)
	require.NotNil(t, m)

	// mutation counters are pre-initialised so they are exported at zero
	assert.Equal(t, 3, testutil.CollectAndCount(m.EmployeeMutations))
	assert.InDelta(t, 0, testutil.ToFloat64(m.EmployeeMutations.WithLabelValues("create")), 0)
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		_ = metrics.NewMetrics(reg)
	})
}
