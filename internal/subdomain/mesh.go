package subdomain

// Selection is an ordered set of flat indices into a grid's padded arrays.
// Order matters: per-node field parameters are matched to selected nodes
// positionally. Selections built through Mesh.Where are row-major with the X
// coordinate varying fastest.
type Selection []int

// Mesh iterates the non-ghost nodes of one region in global coordinates.
// Boundary- and initial-condition callbacks receive one per grid.
type Mesh struct {
	location []int
	size     []int
	envelope int
	strides  []int
}

// Dim returns the spatial dimension of the mesh.
func (m *Mesh) Dim() int { return len(m.size) }

// Each invokes fn for every interior node with its flat padded index and its
// global coordinates. The global slice is reused between calls; callers must
// copy it if they retain it.
func (m *Mesh) Each(fn func(flat int, global []int)) {
	dim := len(m.size)
	local := make([]int, dim)
	global := make([]int, dim)
	total := 1
	for _, s := range m.size {
		total *= s
	}

	for i := 0; i < total; i++ {
		flat := 0
		for a := 0; a < dim; a++ {
			flat += (local[a] + m.envelope) * m.strides[a]
			global[a] = m.location[a] + local[a]
		}
		fn(flat, global)

		for a := 0; a < dim; a++ {
			local[a]++
			if local[a] < m.size[a] {
				break
			}
			local[a] = 0
		}
	}
}

// Where returns the selection of interior nodes whose global coordinates
// satisfy the predicate.
func (m *Mesh) Where(pred func(global []int) bool) Selection {
	var sel Selection
	m.Each(func(flat int, global []int) {
		if pred(global) {
			sel = append(sel, flat)
		}
	})
	return sel
}
