package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogCollector exposes target-catalog Prometheus metrics. It is driven by
// catalog change events.
type CatalogCollector struct {
	TargetsTotal prometheus.Gauge
	ChangesTotal *prometheus.CounterVec
}

// NewCatalogCollector registers catalog metrics against the provided
// registerer.
func NewCatalogCollector(reg prometheus.Registerer) (*CatalogCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	targets := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_targets",
		Help: "Current number of targets in the catalog.",
	})
	targets, err := registerGauge(reg, targets, "catalog_targets")
	if err != nil {
		return nil, err
	}

	changes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_changes_total",
		Help: "Total number of catalog change events, labeled by kind.",
	}, []string{"kind"})
	changes, err = registerCounterVec(reg, changes, "catalog_changes_total")
	if err != nil {
		return nil, err
	}

	return &CatalogCollector{TargetsTotal: targets, ChangesTotal: changes}, nil
}

// SetTargetCount updates the catalog size gauge.
func (c *CatalogCollector) SetTargetCount(n int) {
	if c == nil || c.TargetsTotal == nil {
		return
	}
	c.TargetsTotal.Set(float64(n))
}

// RecordChange counts one catalog change event of the given kind
// ("created", "updated", "deleted").
func (c *CatalogCollector) RecordChange(kind string) {
	if c == nil || c.ChangesTotal == nil {
		return
	}
	c.ChangesTotal.WithLabelValues(kind).Inc()
}
