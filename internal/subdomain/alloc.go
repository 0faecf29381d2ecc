package subdomain

// FieldAllocator supplies backing storage for the per-node scalar fields of a
// grid. The grid only dictates logical length and content; where the memory
// lives (host, pinned, device-mapped) is the allocator's concern.
type FieldAllocator interface {
	Uint32Field(n int) []uint32
	Uint64Field(n int) []uint64
}

// HostAllocator allocates plain host-memory fields.
type HostAllocator struct{}

// Uint32Field returns a zeroed host slice of n values.
func (HostAllocator) Uint32Field(n int) []uint32 { return make([]uint32, n) }

// Uint64Field returns a zeroed host slice of n values.
func (HostAllocator) Uint64Field(n int) []uint64 { return make([]uint64, n) }
