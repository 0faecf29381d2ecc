// Package subdomain owns the per-region node classification grid: the dense
// type/parameter/orientation maps over one region's padded shape, the
// write-once classification API, and the finalization lifecycle that runs the
// inert-node elimination pass, stamps the ghost layer and hands the result to
// the device encoder.
package subdomain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kestrel-sim/latticegrid/internal/config"
	"github.com/kestrel-sim/latticegrid/internal/domain"
	"github.com/kestrel-sim/latticegrid/internal/lattice"
	"github.com/kestrel-sim/latticegrid/internal/monitoring"
	"github.com/kestrel-sim/latticegrid/internal/node"
)

// State is the grid lifecycle phase. Every mutating operation asserts the
// state it requires.
type State int

const (
	// StateUnclassified accepts SetNode writes.
	StateUnclassified State = iota
	// StateClassified holds a finalized classification awaiting encoding.
	StateClassified
	// StateEncoded is reached on the first EncodedMap call; only UpdateNode
	// writes are allowed from here on.
	StateEncoded
)

func (s State) String() string {
	switch s {
	case StateUnclassified:
		return "unclassified"
	case StateClassified:
		return "classified"
	case StateEncoded:
		return "encoded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StateError reports an operation invoked in the wrong lifecycle state.
type StateError struct {
	Op   string
	Got  State
	Want State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: grid is %s, requires %s", e.Op, e.Got, e.Want)
}

// ErrNodeReassigned marks an attempt to classify a node that already carries
// a classification. Boundary-condition callbacks must cover disjoint node
// sets; overriding silently would hide geometry bugs.
var ErrNodeReassigned = errors.New("overriding previously set nodes is not allowed")

// BoundaryFunc classifies nodes over the interior mesh by calling SetNode.
// Nodes it leaves untouched default to fluid.
type BoundaryFunc func(g *Grid, m *Mesh) error

// InitialFunc seeds initial field values over the interior mesh.
type InitialFunc func(g *Grid, m *Mesh) error

// Grid holds the classification state of one region.
type Grid struct {
	spec *domain.RegionSpec
	lat  *lattice.Lattice
	reg  *node.Registry
	cfg  *config.Simulation
	enc  Encoder

	shape   []int // padded extent per axis, X first
	strides []int // flat strides, X fastest

	typeMap     []uint32 // padded; holds encoded values once StateEncoded
	paramKeyMap []uint64 // padded; 0 = never classified
	orientMap   []uint32 // padded
	visMap      []uint32 // interior snapshot taken at finalization

	paramsByKey      map[uint64]*node.Type
	seenTypes        map[uint32]bool
	needsOrientation bool
	state            State
}

// New builds an empty grid for the region. The region's envelope size must be
// known, and the lattice dimension must match the region's.
func New(spec *domain.RegionSpec, lat *lattice.Lattice, reg *node.Registry,
	cfg *config.Simulation, alloc FieldAllocator, enc Encoder) (*Grid, error) {

	if !spec.HasEnvelope() {
		return nil, fmt.Errorf("region %d: envelope size not set", spec.ID)
	}
	if lat.Dim != spec.Dim() {
		return nil, fmt.Errorf("region %d: lattice %s is %dD, region is %dD",
			spec.ID, lat.Name, lat.Dim, spec.Dim())
	}

	shape := append([]int(nil), spec.ActualSize()...)
	strides := make([]int, len(shape))
	stride := 1
	for a := range shape {
		strides[a] = stride
		stride *= shape[a]
	}

	g := &Grid{
		spec:        spec,
		lat:         lat,
		reg:         reg,
		cfg:         cfg,
		enc:         enc,
		shape:       shape,
		strides:     strides,
		typeMap:     alloc.Uint32Field(stride),
		paramKeyMap: alloc.Uint64Field(stride),
		orientMap:   alloc.Uint32Field(stride),
		visMap:      make([]uint32, spec.NumNodes()),
		paramsByKey: make(map[uint64]*node.Type),
		seenTypes:   map[uint32]bool{node.FluidID: true},
	}
	return g, nil
}

// Spec returns the region specification the grid belongs to.
func (g *Grid) Spec() *domain.RegionSpec { return g.spec }

// Lattice returns the lattice the grid classifies against.
func (g *Grid) Lattice() *lattice.Lattice { return g.lat }

// State returns the current lifecycle phase.
func (g *Grid) State() State { return g.state }

// Mesh returns the interior coordinate mesh of the grid.
func (g *Grid) Mesh() *Mesh {
	return &Mesh{
		location: g.spec.Location,
		size:     g.spec.Size,
		envelope: g.spec.EnvelopeSize(),
		strides:  g.strides,
	}
}

// SetNode classifies the selected nodes with the given type. Each node may be
// classified exactly once; a second assignment fails with ErrNodeReassigned
// before any state is touched. Dynamic parameters raise the time/space
// dependence flags on the simulation config instead of being materialized.
func (g *Grid) SetNode(sel Selection, nt *node.Type) error {
	if g.state != StateUnclassified {
		return &StateError{Op: "SetNode", Got: g.state, Want: StateUnclassified}
	}
	if err := nt.ValidateParams(len(sel)); err != nil {
		return err
	}

	for _, idx := range sel {
		if idx < 0 || idx >= len(g.typeMap) {
			return fmt.Errorf("selection index %d out of range", idx)
		}
		if g.paramKeyMap[idx] != 0 {
			return fmt.Errorf("%w (index %d)", ErrNodeReassigned, idx)
		}
	}

	if timeDep, spaceDep := nt.DynamicDependence(); g.cfg != nil {
		g.cfg.TimeDependence = g.cfg.TimeDependence || timeDep
		g.cfg.SpaceDependence = g.cfg.SpaceDependence || spaceDep
	}

	key := nt.ParamKey()
	for _, idx := range sel {
		g.typeMap[idx] = nt.ID()
		g.paramKeyMap[idx] = key
	}
	g.paramsByKey[key] = nt
	g.seenTypes[nt.ID()] = true

	if nt.Orientation != nil {
		for _, idx := range sel {
			g.orientMap[idx] = *nt.Orientation
		}
	} else if nt.Def.NeedsOrientation {
		g.needsOrientation = true
	}
	return nil
}

// UpdateNode rewrites already-encoded nodes during a running simulation. The
// (type, parameter) combination must have been registered before
// finalization, and orientation-requiring types must carry an explicit
// orientation: there is no deferred resolution at runtime.
func (g *Grid) UpdateNode(sel Selection, nt *node.Type) error {
	if g.state != StateEncoded {
		return &StateError{Op: "UpdateNode", Got: g.state, Want: StateEncoded}
	}

	key := nt.ParamKey()
	if _, ok := g.paramsByKey[key]; !ok {
		return fmt.Errorf("node type %s: updating nodes with new parameters is not supported",
			nt.Def.Name)
	}
	if nt.Def.NeedsOrientation && nt.Orientation == nil {
		return fmt.Errorf("node type %s: orientation not specified", nt.Def.Name)
	}

	var orient uint32
	if nt.Orientation != nil {
		orient = *nt.Orientation
	}
	encoded := g.enc.EncodeNode(orient, nt.ID(), key)
	for _, idx := range sel {
		if idx < 0 || idx >= len(g.typeMap) {
			return fmt.Errorf("selection index %d out of range", idx)
		}
		g.typeMap[idx] = encoded
	}
	return nil
}

// Finalize runs the boundary-condition callback over the interior mesh, then
// the inert-node elimination pass, then stamps the ghost layer, snapshots the
// pre-encoding map for visualization and hands the result to the encoder.
//
// Ghosts are stamped after classification: ghost nodes never count towards
// "fully enclosed", so wall isolation is computed only over geometry the
// simulation actually specified.
func (g *Grid) Finalize(bc BoundaryFunc) error {
	if g.state != StateUnclassified {
		return &StateError{Op: "Finalize", Got: g.state, Want: StateUnclassified}
	}
	monitoring.Debugf("region %d: setting subdomain geometry...", g.spec.ID)

	if bc != nil {
		if err := bc(g, g.Mesh()); err != nil {
			return fmt.Errorf("region %d: boundary conditions: %w", g.spec.ID, err)
		}
	}
	monitoring.Debugf("region %d: ... boundary conditions done", g.spec.ID)

	g.classifyInert()
	monitoring.Debugf("region %d: ... postprocessing done", g.spec.ID)

	g.stampGhosts()
	monitoring.Debugf("region %d: ... ghosts done", g.spec.ID)

	g.snapshotVis()

	if g.enc != nil {
		if err := g.enc.Prepare(g.typeMap, g.paramKeyMap, g.paramsByKey); err != nil {
			return fmt.Errorf("region %d: encoder prepare: %w", g.spec.ID, err)
		}
	}
	monitoring.Debugf("region %d: ... encoder done", g.spec.ID)

	g.state = StateClassified
	return nil
}

// InitFields runs the initial-condition callback over the interior mesh.
func (g *Grid) InitFields(ic InitialFunc) error {
	if ic == nil {
		return nil
	}
	return ic(g, g.Mesh())
}

// EncodedMap returns the device-ready type map, encoding it on first call.
// Repeated calls are no-ops until the grid is re-finalized.
func (g *Grid) EncodedMap() ([]uint32, error) {
	switch g.state {
	case StateUnclassified:
		return nil, &StateError{Op: "EncodedMap", Got: g.state, Want: StateClassified}
	case StateClassified:
		if g.enc != nil {
			if err := g.enc.Encode(g.orientMap, g.needsOrientation); err != nil {
				return nil, fmt.Errorf("region %d: encode: %w", g.spec.ID, err)
			}
		}
		g.state = StateEncoded
	}
	return g.typeMap, nil
}

// TypeMap exposes the working padded type map. Before encoding the entries
// are plain type IDs; afterwards they are encoder-packed values. Callers must
// not mutate it.
func (g *Grid) TypeMap() []uint32 { return g.typeMap }

// VisualizationMap returns the pre-encoding interior type map captured during
// finalization.
func (g *Grid) VisualizationMap() []uint32 { return g.visMap }

// FluidMap returns a mask over the interior marking wet-classified nodes.
func (g *Grid) FluidMap() []bool {
	wet := g.reg.WetIDs()
	mask := make([]bool, len(g.visMap))
	for i, id := range g.visMap {
		mask[i] = wet[id]
	}
	return mask
}

// ScratchSpaceSize is the per-node auxiliary float-slot count required by the
// encoder, 0 before an encoder is attached.
func (g *Grid) ScratchSpaceSize() int {
	if g.enc == nil {
		return 0
	}
	return g.enc.ScratchSpaceSize()
}

// NeedsOrientation reports whether any classified type requires orientation
// resolution by the encoder.
func (g *Grid) NeedsOrientation() bool { return g.needsOrientation }

// SeenTypeIDs returns the sorted IDs of every type assigned to the grid,
// fluid included. Encoders size their lookup tables from this set.
func (g *Grid) SeenTypeIDs() []uint32 {
	ids := make([]uint32, 0, len(g.seenTypes))
	for id := range g.seenTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParamsByKey returns the registered (type, parameter) combinations keyed by
// their content hash.
func (g *Grid) ParamsByKey() map[uint64]*node.Type { return g.paramsByKey }

// UpdateContext contributes grid geometry and encoder entries to the
// kernel-generation context. Requires an attached encoder.
func (g *Grid) UpdateContext(ctx map[string]interface{}) error {
	if g.enc == nil {
		return fmt.Errorf("region %d: no encoder attached", g.spec.ID)
	}
	g.enc.UpdateContext(ctx)
	es := g.spec.EnvelopeSize()
	for a := 0; a < g.spec.Dim(); a++ {
		key := fmt.Sprintf("%c_local_device_to_global_offset", 'x'+a)
		ctx[key] = g.spec.Location[a] - es
	}
	return nil
}

// snapshotVis copies the interior of the padded type map into the
// visualization snapshot.
func (g *Grid) snapshotVis() {
	i := 0
	g.Mesh().Each(func(flat int, _ []int) {
		g.visMap[i] = g.typeMap[flat]
		i++
	})
}
