package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/signalsfoundry/skytarget/catalog"
	"github.com/signalsfoundry/skytarget/model"
)

func TestWatchTracksCatalogChanges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCatalogCollector(reg)
	if err != nil {
		t.Fatalf("NewCatalogCollector: %v", err)
	}

	cat := catalog.New()
	unsubscribe := collector.Watch(cat)

	target := &model.Target{
		ID:         "t1",
		Identifier: "vega",
		Type:       model.TargetTypeSidereal,
		Sidereal:   &model.SiderealParams{RA: model.Float64(279.2), Dec: model.Float64(38.8)},
	}
	if err := cat.AddTarget(target); err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	if got := testutil.ToFloat64(collector.TargetsTotal); got != 1 {
		t.Fatalf("catalog_targets = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.ChangesTotal.WithLabelValues("created")); got != 1 {
		t.Fatalf("catalog_changes_total{created} = %v, want 1", got)
	}

	if err := cat.DeleteTarget("t1"); err != nil {
		t.Fatalf("DeleteTarget: %v", err)
	}
	if got := testutil.ToFloat64(collector.TargetsTotal); got != 0 {
		t.Fatalf("catalog_targets after delete = %v, want 0", got)
	}
	if got := testutil.ToFloat64(collector.ChangesTotal.WithLabelValues("deleted")); got != 1 {
		t.Fatalf("catalog_changes_total{deleted} = %v, want 1", got)
	}

	unsubscribe()
	if err := cat.AddTarget(&model.Target{ID: "t2", Identifier: "altair"}); err != nil {
		t.Fatalf("AddTarget after unsubscribe: %v", err)
	}
	if got := testutil.ToFloat64(collector.TargetsTotal); got != 0 {
		t.Fatalf("detached collector should not track, gauge = %v", got)
	}
}
