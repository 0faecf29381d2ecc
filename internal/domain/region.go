package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kestrel-sim/latticegrid/internal/lattice"
)

// ErrSelfConnection is returned when a region is asked to connect to itself.
// This is a defect in caller logic, not an expected topology outcome.
var ErrSelfConnection = errors.New("region cannot connect to itself")

// ConnectionDescriptor is the opaque per-face overlap description produced by
// a ConnectionMaker. It exposes only the identity of the region whose data it
// indexes; the halo-exchange layer interprets the rest.
type ConnectionDescriptor interface {
	RegionID() int
}

// ConnectionMaker builds overlap descriptors for a pair of adjacent regions.
// Make returns false when the regions touch on the face but share no lattice
// directions crossing it, in which case no connection is recorded.
type ConnectionMaker interface {
	Make(src, dst *RegionSpec, face Face, lat *lattice.Lattice) (ConnectionDescriptor, bool)
}

// ConnectionPair is a matched (local, remote) descriptor pair registered on a
// region's face. The mirrored pair on the other region swaps the two roles.
type ConnectionPair struct {
	Local  ConnectionDescriptor
	Remote ConnectionDescriptor
}

// RegionPair carries the real region being connected and the virtual region
// the adjacency test runs against. Without periodic boundaries the two are
// the same; with them, Virtual is a translated copy positioned as if wrapped
// around the domain, and the resulting connection links back to Real.
type RegionPair struct {
	Real    *RegionSpec
	Virtual *RegionSpec
}

// SelfPair wraps a region into a non-periodic RegionPair.
func SelfPair(r *RegionSpec) RegionPair {
	return RegionPair{Real: r, Virtual: r}
}

// FaceRegion identifies one remote region reachable through one face.
type FaceRegion struct {
	Face     Face
	RegionID int
}

// RegionSpec describes the location of one rectangular decomposition unit and
// its connections to other regions. It holds no simulation field data.
type RegionSpec struct {
	ID       int
	Location []int
	Size     []int

	envelope    int
	hasEnvelope bool
	actualSize  []int
	periodicity []bool
	connections map[Face][]ConnectionPair
}

// NewRegionSpec validates and builds a region of the given extent at the
// given global origin. The envelope size is set later, once known.
func NewRegionSpec(id int, location, size []int) (*RegionSpec, error) {
	dim := len(size)
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("region %d: unsupported dimension %d", id, dim)
	}
	if len(location) != dim {
		return nil, fmt.Errorf("region %d: location has %d components, size has %d",
			id, len(location), dim)
	}
	for i, n := range size {
		if n <= 0 {
			return nil, fmt.Errorf("region %d: non-positive size %d along axis %d", id, n, i)
		}
	}
	return &RegionSpec{
		ID:          id,
		Location:    append([]int(nil), location...),
		Size:        append([]int(nil), size...),
		periodicity: make([]bool, dim),
		connections: make(map[Face][]ConnectionPair),
	}, nil
}

// Dim returns the spatial dimension of the region.
func (r *RegionSpec) Dim() int { return len(r.Size) }

// End returns the first global index outside the region along the axis.
func (r *RegionSpec) End(axis int) int { return r.Location[axis] + r.Size[axis] }

// EndLocation returns End for every axis.
func (r *RegionSpec) EndLocation() []int {
	end := make([]int, r.Dim())
	for i := range end {
		end[i] = r.End(i)
	}
	return end
}

// NumNodes returns the number of interior (non-ghost) nodes.
func (r *RegionSpec) NumNodes() int {
	n := 1
	for _, s := range r.Size {
		n *= s
	}
	return n
}

// SetEnvelope records the ghost-layer thickness and derives the actual
// (padded) size of the region.
func (r *RegionSpec) SetEnvelope(es int) error {
	if es < 0 {
		return fmt.Errorf("region %d: negative envelope size %d", r.ID, es)
	}
	r.envelope = es
	r.hasEnvelope = true
	r.actualSize = make([]int, r.Dim())
	for i, s := range r.Size {
		r.actualSize[i] = s + 2*es
	}
	return nil
}

// EnvelopeSize returns the ghost-layer thickness, 0 if not yet set.
func (r *RegionSpec) EnvelopeSize() int { return r.envelope }

// HasEnvelope reports whether SetEnvelope has been called.
func (r *RegionSpec) HasEnvelope() bool { return r.hasEnvelope }

// ActualSize returns the padded extent, nil before SetEnvelope.
func (r *RegionSpec) ActualSize() []int { return r.actualSize }

// EnableLocalPeriodicity makes the region locally periodic along an axis.
func (r *RegionSpec) EnableLocalPeriodicity(axis int) error {
	if axis < 0 || axis >= r.Dim() {
		return fmt.Errorf("region %d: periodicity axis %d out of range", r.ID, axis)
	}
	r.periodicity[axis] = true
	return nil
}

// Periodic reports local periodicity along an axis.
func (r *RegionSpec) Periodic(axis int) bool { return r.periodicity[axis] }

// Translated returns a virtual copy of the region shifted by the given
// offset. The copy keeps the region's identity but carries no connections;
// it exists only to run adjacency tests across a periodic wrap.
func (r *RegionSpec) Translated(shift []int) *RegionSpec {
	loc := make([]int, r.Dim())
	for i := range loc {
		loc[i] = r.Location[i] + shift[i]
	}
	cp := &RegionSpec{
		ID:          r.ID,
		Location:    loc,
		Size:        append([]int(nil), r.Size...),
		periodicity: make([]bool, r.Dim()),
		connections: make(map[Face][]ConnectionPair),
	}
	return cp
}

// addConnection appends a pair to the face list, silently ignoring a second
// registration for the same remote region.
func (r *RegionSpec) addConnection(face Face, pair ConnectionPair) {
	for _, existing := range r.connections[face] {
		if existing.Remote.RegionID() == pair.Remote.RegionID() {
			return
		}
	}
	r.connections[face] = append(r.connections[face], pair)
}

// ConnectionsOnFace returns the pairs on a face pointing at the given remote
// region, in registration order.
func (r *RegionSpec) ConnectionsOnFace(face Face, remoteID int) []ConnectionPair {
	var out []ConnectionPair
	for _, pair := range r.connections[face] {
		if pair.Remote.RegionID() == remoteID {
			out = append(out, pair)
		}
	}
	return out
}

// HasFaceConnection reports whether any connection exists on the face. Faces
// without connections get ghost-fill boundary conditions instead of halo
// exchange.
func (r *RegionSpec) HasFaceConnection(face Face) bool {
	return len(r.connections[face]) > 0
}

// ConnectedRegions returns the deduplicated (face, remote region) pairs of
// this region, sorted for deterministic schedule construction.
func (r *RegionSpec) ConnectedRegions() []FaceRegion {
	seen := make(map[FaceRegion]bool)
	var out []FaceRegion
	for face, pairs := range r.connections {
		for _, pair := range pairs {
			fr := FaceRegion{Face: face, RegionID: pair.Remote.RegionID()}
			if !seen[fr] {
				seen[fr] = true
				out = append(out, fr)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Face != out[j].Face {
			return out[i].Face < out[j].Face
		}
		return out[i].RegionID < out[j].RegionID
	})
	return out
}

// Connect attempts to connect this region to pair.Real, testing adjacency
// against pair.Virtual. The first axis on which the two boundaries coincide
// is taken as the connecting axis; regions are only ever face-adjacent at
// this level, edge and corner transfer belongs to the halo-exchange layer.
//
// Returns (false, nil) when no adjacency exists or the maker reports no
// usable overlap; neither region is mutated in that case.
func (r *RegionSpec) Connect(pair RegionPair, maker ConnectionMaker, lat *lattice.Lattice) (bool, error) {
	if pair.Real == nil || pair.Virtual == nil {
		return false, fmt.Errorf("region %d: connect with nil pair", r.ID)
	}
	if pair.Real.ID == r.ID {
		return false, ErrSelfConnection
	}

	for axis := 0; axis < r.Dim(); axis++ {
		if r.End(axis) == pair.Virtual.Location[axis] {
			return connectAlong(axis, r, pair.Real, r, pair.Virtual, maker, lat), nil
		}
		if pair.Virtual.End(axis) == r.Location[axis] {
			return connectAlong(axis, pair.Real, r, pair.Virtual, r, maker, lat), nil
		}
	}
	return false, nil
}

// connectAlong builds the matched descriptor pair across one axis. high owns
// the high face of the shared boundary and low the opposite low face; vHigh
// and vLow are the (possibly virtual) regions the descriptors are derived
// from. Registration happens on the real regions only.
func connectAlong(axis int, high, low, vHigh, vLow *RegionSpec, maker ConnectionMaker, lat *lattice.Lattice) bool {
	highFace := FaceFor(axis, 1)
	lowFace := FaceFor(axis, -1)

	cHigh, ok := maker.Make(vHigh, vLow, highFace, lat)
	if !ok {
		return false
	}
	cLow, ok := maker.Make(vLow, vHigh, lowFace, lat)
	if !ok {
		return false
	}

	high.addConnection(highFace, ConnectionPair{Local: cHigh, Remote: cLow})
	low.addConnection(lowFace, ConnectionPair{Local: cLow, Remote: cHigh})
	return true
}

// UpdateContext contributes region geometry to the kernel-generation context.
// Periodicity is reported as off on every axis: the downstream kernels do not
// support ghost nodes in their periodicity handling yet, so true per-axis
// flags are withheld until they do.
func (r *RegionSpec) UpdateContext(ctx map[string]interface{}) {
	dim := r.Dim()
	ctx["dim"] = dim
	// The flux tensor is a symmetric matrix.
	ctx["flux_components"] = dim * (dim + 1) / 2
	ctx["envelope_size"] = r.envelope
	ctx["periodicity"] = make([]bool, dim)
	for axis := 0; axis < dim; axis++ {
		ctx[fmt.Sprintf("periodic_%c", 'x'+axis)] = 0
	}
}
