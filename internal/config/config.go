// Package config holds the simulation runtime state and the JSON layout
// configuration consumed by the decomposition tooling.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Simulation carries runtime flags owned by the simulation as a whole.
// Grids raise the dependence flags when node types carry dynamic (symbolic)
// parameters; the kernel-generation layer reads them to decide what to
// compile in.
type Simulation struct {
	TimeDependence  bool
	SpaceDependence bool
}

// RegionLayout describes one region in a layout file.
type RegionLayout struct {
	ID       int   `json:"id"`
	Location []int `json:"location"`
	Size     []int `json:"size"`
}

// Layout is the root configuration for the topology tooling. Optional fields
// use pointers so a partial file falls back to defaults via the Get* methods.
type Layout struct {
	Lattice      *string        `json:"lattice,omitempty"`
	EnvelopeSize *int           `json:"envelope_size,omitempty"`
	DomainSize   []int          `json:"domain_size"`
	Periodic     []bool         `json:"periodic,omitempty"`
	Regions      []RegionLayout `json:"regions"`
}

// LoadLayout loads a Layout from a JSON file. Fields omitted from the file
// retain their defaults, so partial configs are safe.
func LoadLayout(path string) (*Layout, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("layout file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	layout := &Layout{}
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout JSON: %w", err)
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

// Validate checks that the layout is structurally sound.
func (l *Layout) Validate() error {
	dim := len(l.DomainSize)
	if dim != 2 && dim != 3 {
		return fmt.Errorf("domain_size must have 2 or 3 components, got %d", dim)
	}
	for i, n := range l.DomainSize {
		if n <= 0 {
			return fmt.Errorf("domain_size[%d] must be positive, got %d", i, n)
		}
	}
	if l.Periodic != nil && len(l.Periodic) != dim {
		return fmt.Errorf("periodic has %d flags for a %dD domain", len(l.Periodic), dim)
	}
	if l.EnvelopeSize != nil && *l.EnvelopeSize < 0 {
		return fmt.Errorf("envelope_size must be non-negative, got %d", *l.EnvelopeSize)
	}
	if len(l.Regions) == 0 {
		return fmt.Errorf("layout defines no regions")
	}

	seen := make(map[int]bool)
	for _, r := range l.Regions {
		if seen[r.ID] {
			return fmt.Errorf("duplicate region id %d", r.ID)
		}
		seen[r.ID] = true
		if len(r.Location) != dim || len(r.Size) != dim {
			return fmt.Errorf("region %d: location/size must have %d components", r.ID, dim)
		}
		for i, n := range r.Size {
			if n <= 0 {
				return fmt.Errorf("region %d: size[%d] must be positive, got %d", r.ID, i, n)
			}
		}
	}
	return nil
}

// GetLattice returns the configured lattice name or the default.
func (l *Layout) GetLattice() string {
	if l.Lattice == nil || *l.Lattice == "" {
		if len(l.DomainSize) == 3 {
			return "D3Q19"
		}
		return "D2Q9"
	}
	return *l.Lattice
}

// GetEnvelopeSize returns the configured ghost-layer thickness or the default.
func (l *Layout) GetEnvelopeSize() int {
	if l.EnvelopeSize == nil {
		return 1
	}
	return *l.EnvelopeSize
}

// GetPeriodic returns the per-axis periodicity flags, defaulting to all off.
func (l *Layout) GetPeriodic() []bool {
	if l.Periodic == nil {
		return make([]bool, len(l.DomainSize))
	}
	return l.Periodic
}
