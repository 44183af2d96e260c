package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordComputationUpdatesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewVisibilityCollector(reg)
	if err != nil {
		t.Fatalf("NewVisibilityCollector: %v", err)
	}

	collector.RecordComputation("SIDEREAL", 25*time.Millisecond, 2, 12, 0)
	collector.RecordComputation("SIDEREAL", 10*time.Millisecond, 1, 6, 1)

	if got := testutil.ToFloat64(collector.Computations.WithLabelValues("SIDEREAL")); got != 2 {
		t.Fatalf("visibility_computations_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.SamplesTotal); got != 18 {
		t.Fatalf("visibility_samples_total = %v, want 18", got)
	}
	if got := testutil.ToFloat64(collector.SiteFailuresTotal); got != 1 {
		t.Fatalf("visibility_site_failures_total = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "visibility_computation_duration_seconds", map[string]string{
		"target_type": "SIDEREAL",
	}); count != 2 {
		t.Fatalf("visibility_computation_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestMetricsHandlerExposesCatalogGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewVisibilityCollector(reg)
	if err != nil {
		t.Fatalf("NewVisibilityCollector: %v", err)
	}
	catalog, err := NewCatalogCollector(reg)
	if err != nil {
		t.Fatalf("NewCatalogCollector: %v", err)
	}
	catalog.SetTargetCount(7)
	catalog.RecordChange("created")
	collector.RecordComputation("NON_SIDEREAL", 5*time.Millisecond, 1, 4, 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"visibility_computations_total",
		"visibility_computation_duration_seconds",
		"visibility_samples_total",
		"catalog_targets",
		"catalog_changes_total",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
	if !strings.Contains(body, "catalog_targets 7") {
		t.Fatalf("/metrics output missing catalog gauge value: %s", body)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
