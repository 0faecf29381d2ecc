// Package lattice defines the discrete velocity sets used by the
// classification pass and by connection makers. Each lattice carries Q basis
// vectors (the rest vector included) over a D-dimensional integer grid.
package lattice

import "fmt"

// Lattice describes the connectivity of a discrete velocity set.
type Lattice struct {
	Name  string
	Dim   int
	Q     int
	Basis [][]int
}

// Validate checks internal consistency of the lattice definition.
func (l *Lattice) Validate() error {
	if l.Dim != 2 && l.Dim != 3 {
		return fmt.Errorf("lattice %s: unsupported dimension %d", l.Name, l.Dim)
	}
	if len(l.Basis) != l.Q {
		return fmt.Errorf("lattice %s: %d basis vectors, Q=%d", l.Name, len(l.Basis), l.Q)
	}
	for i, vec := range l.Basis {
		if len(vec) != l.Dim {
			return fmt.Errorf("lattice %s: basis vector %d has %d components, want %d",
				l.Name, i, len(vec), l.Dim)
		}
		for _, c := range vec {
			if c < -1 || c > 1 {
				return fmt.Errorf("lattice %s: basis vector %d component out of range: %v",
					l.Name, i, vec)
			}
		}
	}
	return nil
}

// HasVectorAlong reports whether any basis vector has the given sign along
// the given axis. A face only carries cross-region traffic if at least one
// lattice direction points through it.
func (l *Lattice) HasVectorAlong(axis, dir int) bool {
	for _, vec := range l.Basis {
		if axis < len(vec) && sign(vec[axis]) == dir {
			return true
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// D2Q9 returns the standard two-dimensional nine-velocity lattice.
func D2Q9() *Lattice {
	return &Lattice{
		Name: "D2Q9",
		Dim:  2,
		Q:    9,
		Basis: [][]int{
			{0, 0},
			{1, 0}, {0, 1}, {-1, 0}, {0, -1},
			{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
		},
	}
}

// D3Q15 returns the three-dimensional fifteen-velocity lattice
// (rest, six axis vectors, eight cube corners).
func D3Q15() *Lattice {
	return &Lattice{
		Name: "D3Q15",
		Dim:  3,
		Q:    15,
		Basis: [][]int{
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
			{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
			{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
		},
	}
}

// D3Q19 returns the three-dimensional nineteen-velocity lattice
// (rest, six axis vectors, twelve cube edges).
func D3Q19() *Lattice {
	return &Lattice{
		Name: "D3Q19",
		Dim:  3,
		Q:    19,
		Basis: [][]int{
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
			{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
			{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
			{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
		},
	}
}

// D3Q27 returns the full three-dimensional twenty-seven-velocity lattice.
func D3Q27() *Lattice {
	basis := make([][]int, 0, 27)
	basis = append(basis, []int{0, 0, 0})
	for z := -1; z <= 1; z++ {
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				basis = append(basis, []int{x, y, z})
			}
		}
	}
	return &Lattice{Name: "D3Q27", Dim: 3, Q: 27, Basis: basis}
}

// ByName resolves a lattice from its conventional name.
func ByName(name string) (*Lattice, error) {
	switch name {
	case "D2Q9":
		return D2Q9(), nil
	case "D3Q15":
		return D3Q15(), nil
	case "D3Q19":
		return D3Q19(), nil
	case "D3Q27":
		return D3Q27(), nil
	}
	return nil, fmt.Errorf("unknown lattice %q", name)
}
