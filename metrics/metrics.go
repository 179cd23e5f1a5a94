// Package metrics provides Prometheus metrics for validation outcomes.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	goshape "github.com/reoring/goshape"
)

// Collector holds the Prometheus metrics recorded by Parse and Observe.
type Collector struct {
	// Validation metrics
	Validations *prometheus.CounterVec
	Issues      *prometheus.CounterVec
	Duration    *prometheus.HistogramVec

	// Registry metrics
	Reloads      prometheus.Counter
	ReloadErrors prometheus.Counter
}

// New creates a collector registered with the default registry.
func New() *Collector { return NewWithRegistry(prometheus.DefaultRegisterer) }

// NewWithRegistry creates a collector registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goshape",
				Name:      "validations_total",
				Help:      "Total number of validations by schema and outcome",
			},
			[]string{"schema", "outcome"},
		),
		Issues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goshape",
				Name:      "issues_total",
				Help:      "Total number of validation issues by schema and code",
			},
			[]string{"schema", "code"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goshape",
				Name:      "validation_duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"schema"},
		),
		Reloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "goshape",
				Name:      "registry_reloads_total",
				Help:      "Total number of successful schema registry reloads",
			},
		),
		ReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "goshape",
				Name:      "registry_reload_errors_total",
				Help:      "Total number of failed schema registry reloads",
			},
		),
	}
}

// Observe records the outcome of one validation. Errors that are not Issues
// count as outcome "error".
func (c *Collector) Observe(schema string, d time.Duration, err error) {
	c.Duration.WithLabelValues(schema).Observe(d.Seconds())
	if err == nil {
		c.Validations.WithLabelValues(schema, "valid").Inc()
		return
	}
	iss, ok := goshape.AsIssues(err)
	if !ok {
		c.Validations.WithLabelValues(schema, "error").Inc()
		return
	}
	c.Validations.WithLabelValues(schema, "invalid").Inc()
	for _, it := range iss {
		c.Issues.WithLabelValues(schema, it.Code).Inc()
	}
}

// Parse runs goshape.Parse and records the outcome under name.
func (c *Collector) Parse(ctx context.Context, name string, s goshape.Schema, v any) (any, error) {
	start := time.Now()
	out, err := goshape.Parse(ctx, s, v)
	c.Observe(name, time.Since(start), err)
	return out, err
}

// ObserveReload records a registry reload result.
func (c *Collector) ObserveReload(err error) {
	if err != nil {
		c.ReloadErrors.Inc()
		return
	}
	c.Reloads.Inc()
}
