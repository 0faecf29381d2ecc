package subdomain

import "gonum.org/v1/gonum/stat"

// classifyInert finds dry nodes that are surrounded by dry nodes along every
// lattice direction and retags them as inert: they can neither influence nor
// be influenced by the fluid, so the compute kernels skip them entirely.
//
// For each basis vector the padded type map is sampled with a wrapped shift
// by the negative of the vector, accumulating per node the number of
// directions whose neighbor is dry. Wraparound is the correct neighbor
// semantics here even without a ghost layer, which is what keeps envelope 0
// grids working.
func (g *Grid) classifyInert() {
	dry := g.reg.DryIDs()
	counts := make([]uint16, len(g.typeMap))
	dim := len(g.shape)
	q := make([]int, dim)

	for _, vec := range g.lat.Basis {
		g.eachPadded(func(flat int, p []int) {
			nflat := 0
			for a := 0; a < dim; a++ {
				q[a] = p[a] + vec[a]
				if q[a] < 0 {
					q[a] += g.shape[a]
				} else if q[a] >= g.shape[a] {
					q[a] -= g.shape[a]
				}
				nflat += q[a] * g.strides[a]
			}
			if dry[g.typeMap[nflat]] {
				counts[flat]++
			}
		})
	}

	inert := g.reg.Inert.ID
	target := uint16(g.lat.Q)
	for i, c := range counts {
		if c == target && dry[g.typeMap[i]] {
			g.typeMap[i] = inert
		}
	}
}

// stampGhosts overwrites every node within the envelope band of any outer
// face with the reserved ghost type. A zero envelope leaves the map unchanged.
func (g *Grid) stampGhosts() {
	es := g.spec.EnvelopeSize()
	if es == 0 {
		return
	}
	ghost := g.reg.Ghost.ID
	g.eachPadded(func(flat int, p []int) {
		for a := range g.shape {
			if p[a] < es || p[a] >= es+g.spec.Size[a] {
				g.typeMap[flat] = ghost
				return
			}
		}
	})
}

// eachPadded walks every node of the padded shape in flat order, yielding the
// flat index and the per-axis coordinates. The coordinate slice is reused
// between calls.
func (g *Grid) eachPadded(fn func(flat int, p []int)) {
	dim := len(g.shape)
	p := make([]int, dim)
	for flat := range g.typeMap {
		fn(flat, p)
		for a := 0; a < dim; a++ {
			p[a]++
			if p[a] < g.shape[a] {
				break
			}
			p[a] = 0
		}
	}
}

// FluidFraction returns the wet share of the interior, a cheap load-balance
// signal for the decomposition tooling.
func (g *Grid) FluidFraction() float64 {
	mask := g.FluidMap()
	if len(mask) == 0 {
		return 0
	}
	indicator := make([]float64, len(mask))
	for i, wet := range mask {
		if wet {
			indicator[i] = 1
		}
	}
	return stat.Mean(indicator, nil)
}
