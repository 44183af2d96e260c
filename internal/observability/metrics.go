package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VisibilityCollector bundles Prometheus metrics for the visibility
// calculator. It satisfies core.MetricsRecorder.
type VisibilityCollector struct {
	gatherer prometheus.Gatherer

	Computations        *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	SamplesTotal        prometheus.Counter
	SiteFailuresTotal   prometheus.Counter
}

// NewVisibilityCollector registers calculator metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewVisibilityCollector(reg prometheus.Registerer) (*VisibilityCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "visibility_computations_total",
		Help: "Total number of visibility computations, labeled by target type.",
	}, []string{"target_type"})
	computations, err := registerCounterVec(reg, computations, "visibility_computations_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "visibility_computation_duration_seconds",
		Help:    "Visibility computation latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"target_type"})
	durations, err = registerHistogramVec(reg, durations, "visibility_computation_duration_seconds")
	if err != nil {
		return nil, err
	}

	samples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "visibility_samples_total",
		Help: "Total number of (site, time) samples produced by the calculator.",
	})
	samples, err = registerCounter(reg, samples, "visibility_samples_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "visibility_site_failures_total",
		Help: "Total number of per-site failures accumulated by the calculator.",
	})
	failures, err = registerCounter(reg, failures, "visibility_site_failures_total")
	if err != nil {
		return nil, err
	}

	return &VisibilityCollector{
		gatherer:            gatherer,
		Computations:        computations,
		ComputationDuration: durations,
		SamplesTotal:        samples,
		SiteFailuresTotal:   failures,
	}, nil
}

// RecordComputation implements core.MetricsRecorder.
func (c *VisibilityCollector) RecordComputation(targetType string, elapsed time.Duration, sites, samples, failures int) {
	if c == nil {
		return
	}
	if c.Computations != nil {
		c.Computations.WithLabelValues(targetType).Inc()
	}
	if c.ComputationDuration != nil {
		c.ComputationDuration.WithLabelValues(targetType).Observe(elapsed.Seconds())
	}
	if c.SamplesTotal != nil {
		c.SamplesTotal.Add(float64(samples))
	}
	if c.SiteFailuresTotal != nil {
		c.SiteFailuresTotal.Add(float64(failures))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *VisibilityCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
