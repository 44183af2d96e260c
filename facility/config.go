package facility

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAML shapes are unexported so the on-disk format can evolve independently
// of the registry API.
type registryYAML struct {
	Facilities []facilityYAML `yaml:"facilities"`
}

type facilityYAML struct {
	Name  string              `yaml:"name"`
	Sites map[string]siteYAML `yaml:"sites"`
}

type siteYAML struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Elevation float64  `yaml:"elevation"`
}

// LoadRegistry reads a YAML facility catalogue from r and returns a populated
// registry. Sites missing latitude or longitude are rejected here so the
// calculator never sees malformed coordinates.
func LoadRegistry(r io.Reader) (*Registry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read facility config: %w", err)
	}

	var cfg registryYAML
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse facility config: %w", err)
	}

	reg := NewRegistry()
	for _, fy := range cfg.Facilities {
		if fy.Name == "" {
			return nil, fmt.Errorf("facility config: facility with empty name")
		}
		sites := make(map[string]Site, len(fy.Sites))
		for name, sy := range fy.Sites {
			if sy.Latitude == nil || sy.Longitude == nil {
				return nil, fmt.Errorf("facility %q site %q: latitude and longitude are required", fy.Name, name)
			}
			sites[name] = Site{
				Latitude:  *sy.Latitude,
				Longitude: *sy.Longitude,
				Elevation: sy.Elevation,
			}
		}
		if err := reg.Register(NewStaticFacility(fy.Name, sites)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadRegistryFile is LoadRegistry over a file path.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facility config: %w", err)
	}
	defer f.Close()
	return LoadRegistry(f)
}
