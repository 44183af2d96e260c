// Package facility holds the registry of observing facilities and the
// ground sites they operate. The visibility calculator iterates every
// registered facility and every site within it.
package facility

import (
	"fmt"
	"sort"
	"sync"
)

// Site is a single observing location. Latitude and longitude are geodetic
// degrees (north/east positive); elevation is metres above the ellipsoid.
type Site struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// Facility exposes the observing sites operated by one facility.
type Facility interface {
	Name() string
	ObservingSites() map[string]Site
}

// Registry is a thread-safe collection of facilities.
type Registry struct {
	mu         sync.RWMutex
	facilities map[string]Facility
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{facilities: make(map[string]Facility)}
}

// Register adds a facility. It returns an error if the name is already taken.
func (r *Registry) Register(f Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.facilities[f.Name()]; exists {
		return fmt.Errorf("facility %q already registered", f.Name())
	}
	r.facilities[f.Name()] = f
	return nil
}

// Get returns the facility with the given name.
func (r *Registry) Get(name string) (Facility, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.facilities[name]
	return f, ok
}

// All returns a snapshot of every registered facility, sorted by name so that
// callers iterate in a stable order.
func (r *Registry) All() []Facility {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Facility, 0, len(r.facilities))
	for _, f := range r.facilities {
		res = append(res, f)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

// StaticFacility is a Facility backed by a fixed site table, typically loaded
// from configuration.
type StaticFacility struct {
	name  string
	sites map[string]Site
}

// NewStaticFacility builds a facility from a name and site table. The site map
// is copied.
func NewStaticFacility(name string, sites map[string]Site) *StaticFacility {
	copied := make(map[string]Site, len(sites))
	for k, v := range sites {
		copied[k] = v
	}
	return &StaticFacility{name: name, sites: copied}
}

// Name returns the facility name.
func (f *StaticFacility) Name() string { return f.name }

// ObservingSites returns a copy of the site table.
func (f *StaticFacility) ObservingSites() map[string]Site {
	out := make(map[string]Site, len(f.sites))
	for k, v := range f.sites {
		out[k] = v
	}
	return out
}

// SiteNames returns the facility's site names in sorted order.
func SiteNames(f Facility) []string {
	sites := f.ObservingSites()
	names := make([]string, 0, len(sites))
	for name := range sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
