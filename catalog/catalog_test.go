package catalog

import (
	"testing"
	"time"

	"github.com/signalsfoundry/skytarget/model"
)

func TestAddAndGetTarget(t *testing.T) {
	store := New()
	target := &model.Target{
		ID:         "t1",
		Identifier: "Kelt-16b",
		Type:       model.TargetTypeSidereal,
		Sidereal:   &model.SiderealParams{RA: model.Float64(314.27), Dec: model.Float64(31.66)},
	}
	if err := store.AddTarget(target); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	got := store.GetTarget("t1")
	if got == nil || got.Identifier != "Kelt-16b" {
		t.Fatalf("GetTarget returned %#v, want Kelt-16b", got)
	}
	if got.Created.IsZero() || got.Modified.IsZero() {
		t.Fatalf("timestamps not stamped: %v / %v", got.Created, got.Modified)
	}
}

func TestAddTargetDuplicate(t *testing.T) {
	store := New()
	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("first AddTarget error: %v", err)
	}
	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "b"}); err == nil {
		t.Fatal("expected duplicate AddTarget to fail")
	}
}

func TestAddTargetValidates(t *testing.T) {
	store := New()
	bad := &model.Target{
		ID:       "t1",
		Type:     model.TargetTypeNonSidereal,
		Sidereal: &model.SiderealParams{},
	}
	if err := store.AddTarget(bad); err == nil {
		t.Fatal("expected validation failure for mismatched variant")
	}
}

func TestUpdateTargetRefreshesModified(t *testing.T) {
	store := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}

	current = base.Add(time.Hour)
	if err := store.UpdateTarget(&model.Target{ID: "t1", Identifier: "a2"}); err != nil {
		t.Fatalf("UpdateTarget error: %v", err)
	}

	got := store.GetTarget("t1")
	if !got.Created.Equal(base) {
		t.Fatalf("Created changed on update: %v", got.Created)
	}
	if !got.Modified.Equal(base.Add(time.Hour)) {
		t.Fatalf("Modified not refreshed: %v", got.Modified)
	}
}

func TestDeleteTargetCascades(t *testing.T) {
	store := New()
	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	if err := store.SetExtra("t1", "redshift", "0.12"); err != nil {
		t.Fatalf("SetExtra error: %v", err)
	}
	if err := store.AddList(&model.TargetList{ID: "l1", Name: "follow-up", TargetIDs: []string{"t1"}}); err != nil {
		t.Fatalf("AddList error: %v", err)
	}

	if err := store.DeleteTarget("t1"); err != nil {
		t.Fatalf("DeleteTarget error: %v", err)
	}
	if store.GetTarget("t1") != nil {
		t.Fatal("target still present after delete")
	}
	if len(store.Extras("t1")) != 0 {
		t.Fatal("extras not cascaded")
	}
	if got := store.GetList("l1"); len(got.TargetIDs) != 0 {
		t.Fatalf("list membership not cascaded: %v", got.TargetIDs)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	store := New()
	var events []Event
	unsub := store.Subscribe(func(e Event) { events = append(events, e) })
	defer unsub()

	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	if err := store.UpdateTarget(&model.Target{ID: "t1", Identifier: "a2"}); err != nil {
		t.Fatalf("UpdateTarget error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventTargetCreated || events[1].Type != EventTargetUpdated {
		t.Fatalf("unexpected event types: %v, %v", events[0].Type, events[1].Type)
	}
	if events[1].Target.Identifier != "a2" {
		t.Fatalf("event carries stale target: %q", events[1].Target.Identifier)
	}
}

func TestUnsubscribeIsOrderIndependent(t *testing.T) {
	store := New()
	counts := make([]int, 3)
	unsubs := make([]func(), 3)
	for i := range counts {
		i := i
		unsubs[i] = store.Subscribe(func(Event) { counts[i]++ })
	}

	// Removing the first subscriber must not invalidate the later ones.
	unsubs[0]()
	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	if counts[0] != 0 || counts[1] != 1 || counts[2] != 1 {
		t.Fatalf("counts after first unsubscribe = %v, want [0 1 1]", counts)
	}

	unsubs[2]()
	if err := store.AddTarget(&model.Target{ID: "t2", Identifier: "b"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	if counts[1] != 2 || counts[2] != 1 {
		t.Fatalf("counts after second unsubscribe = %v, want [0 2 1]", counts)
	}

	unsubs[1]()
	unsubs[1]() // repeated unsubscribe is a no-op
	if err := store.AddTarget(&model.Target{ID: "t3", Identifier: "c"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	if counts[1] != 2 {
		t.Fatalf("subscriber fired after unsubscribe: counts = %v", counts)
	}
}

func TestExtrasSortedAndReplaced(t *testing.T) {
	store := New()
	if err := store.AddTarget(&model.Target{ID: "t1", Identifier: "a"}); err != nil {
		t.Fatalf("AddTarget error: %v", err)
	}
	for _, kv := range [][2]string{{"b", "2"}, {"a", "1"}, {"b", "3"}} {
		if err := store.SetExtra("t1", kv[0], kv[1]); err != nil {
			t.Fatalf("SetExtra error: %v", err)
		}
	}
	extras := store.Extras("t1")
	if len(extras) != 2 {
		t.Fatalf("got %d extras, want 2", len(extras))
	}
	if extras[0].Key != "a" || extras[1].Key != "b" || extras[1].Value != "3" {
		t.Fatalf("unexpected extras: %v", extras)
	}
}
