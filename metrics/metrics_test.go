package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	g "github.com/reoring/goshape/dsl"
	"github.com/reoring/goshape/metrics"
)

func TestCollector_Parse(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	s := g.Object().Field("name", g.String()).Field("age", g.Number().Gte(0))
	ctx := context.Background()

	_, err := m.Parse(ctx, "user", s, map[string]any{"name": "a", "age": 1})
	require.NoError(t, err)
	_, err = m.Parse(ctx, "user", s, map[string]any{"age": -1})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("user", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("user", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Issues.WithLabelValues("user", "required_field_missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Issues.WithLabelValues("user", "too_small")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestCollector_ObserveNonIssueError(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	m.Observe("raw", time.Millisecond, errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("raw", "error")))
}

func TestCollector_ObserveReload(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	m.ObserveReload(nil)
	m.ObserveReload(nil)
	m.ObserveReload(errors.New("bad document"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reloads))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReloadErrors))
}
