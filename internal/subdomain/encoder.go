package subdomain

import "github.com/kestrel-sim/latticegrid/internal/node"

// Encoder packs a finalized grid into its device-ready representation. The
// concrete encoder lives with the kernel-generation layer; the grid only
// drives this interface.
type Encoder interface {
	// Prepare receives the classified maps and the parameter registry after
	// finalization, before any encoding happens.
	Prepare(typeMap []uint32, paramKeys []uint64, params map[uint64]*node.Type) error

	// Encode packs the full type map in place. needsOrientation asks the
	// encoder to resolve per-node orientation from neighbor geometry for
	// types that did not declare one explicitly.
	Encode(orientation []uint32, needsOrientation bool) error

	// EncodeNode packs a single node value; used for runtime updates.
	EncodeNode(orientation, typeID uint32, paramKey uint64) uint32

	// ScratchSpaceSize is the per-node auxiliary float-slot count the encoded
	// representation requires.
	ScratchSpaceSize() int

	// UpdateContext contributes encoder-specific entries to the
	// kernel-generation context.
	UpdateContext(ctx map[string]interface{})
}
