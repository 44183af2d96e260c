package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/signalsfoundry/skytarget/model"
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventTargetCreated EventType = iota
	EventTargetUpdated
	EventTargetDeleted
)

// Event is emitted to subscribers when a target changes.
type Event struct {
	Type   EventType
	Target model.Target
}

// Catalog is an in-memory, thread-safe store of targets, their extras, and
// target lists. It mirrors the persisted store's semantics (timestamps,
// cascades) for callers that do not need durability.
type Catalog struct {
	mu sync.RWMutex

	targets map[string]*model.Target
	extras  map[string][]model.TargetExtra
	lists   map[string]*model.TargetList

	subs    map[int]func(Event)
	nextSub int

	now func() time.Time
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		targets: make(map[string]*model.Target),
		extras:  make(map[string][]model.TargetExtra),
		lists:   make(map[string]*model.TargetList),
		subs:    make(map[int]func(Event)),
		now:     time.Now,
	}
}

// AddTarget adds a new target, stamping Created/Modified. It returns an error
// if the ID already exists or the target fails validation.
func (c *Catalog) AddTarget(t *model.Target) error {
	if err := t.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if _, exists := c.targets[t.ID]; exists {
		c.mu.Unlock()
		return fmt.Errorf("target with ID %q already exists", t.ID)
	}
	now := c.now().UTC()
	t.Created = now
	t.Modified = now
	c.targets[t.ID] = t
	event := Event{Type: EventTargetCreated, Target: *t}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// UpdateTarget replaces the stored target with the same ID, preserving
// Created and refreshing Modified.
func (c *Catalog) UpdateTarget(t *model.Target) error {
	if err := t.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	old, ok := c.targets[t.ID]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("target with ID %q not found", t.ID)
	}
	t.Created = old.Created
	t.Modified = c.now().UTC()
	c.targets[t.ID] = t
	event := Event{Type: EventTargetUpdated, Target: *t}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// DeleteTarget removes a target, its extras, and its list memberships.
func (c *Catalog) DeleteTarget(id string) error {
	c.mu.Lock()
	t, ok := c.targets[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("target with ID %q not found", id)
	}
	delete(c.targets, id)
	delete(c.extras, id)
	for _, l := range c.lists {
		l.TargetIDs = removeID(l.TargetIDs, id)
	}
	event := Event{Type: EventTargetDeleted, Target: *t}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// GetTarget returns the target with the given ID, or nil if not found.
func (c *Catalog) GetTarget(id string) *model.Target {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.targets[id]
}

// ListTargets returns a snapshot of all targets sorted by identifier.
func (c *Catalog) ListTargets() []*model.Target {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]*model.Target, 0, len(c.targets))
	for _, t := range c.targets {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Identifier < res[j].Identifier })
	return res
}

// SetExtra attaches or replaces a key/value attribute on a target.
func (c *Catalog) SetExtra(targetID, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.targets[targetID]; !ok {
		return fmt.Errorf("target with ID %q not found", targetID)
	}
	extras := c.extras[targetID]
	for i, e := range extras {
		if e.Key == key {
			extras[i].Value = value
			return nil
		}
	}
	c.extras[targetID] = append(extras, model.TargetExtra{TargetID: targetID, Key: key, Value: value})
	return nil
}

// Extras returns a copy of a target's extra attributes, sorted by key.
func (c *Catalog) Extras(targetID string) []model.TargetExtra {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := append([]model.TargetExtra{}, c.extras[targetID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// AddList adds a new target list, stamping Created.
func (c *Catalog) AddList(l *model.TargetList) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.lists[l.ID]; exists {
		return fmt.Errorf("target list with ID %q already exists", l.ID)
	}
	for _, id := range l.TargetIDs {
		if _, ok := c.targets[id]; !ok {
			return fmt.Errorf("target with ID %q not found for list %q", id, l.Name)
		}
	}
	l.Created = c.now().UTC()
	c.lists[l.ID] = l
	return nil
}

// AddToList appends a target to an existing list.
func (c *Catalog) AddToList(listID, targetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lists[listID]
	if !ok {
		return fmt.Errorf("target list with ID %q not found", listID)
	}
	if _, ok := c.targets[targetID]; !ok {
		return fmt.Errorf("target with ID %q not found", targetID)
	}
	for _, id := range l.TargetIDs {
		if id == targetID {
			return nil
		}
	}
	l.TargetIDs = append(l.TargetIDs, targetID)
	return nil
}

// GetList returns the list with the given ID, or nil if not found.
func (c *Catalog) GetList(id string) *model.TargetList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lists[id]
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// snapshotSubs copies the current subscriber set. Callers must hold c.mu.
func (c *Catalog) snapshotSubs() []func(Event) {
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
