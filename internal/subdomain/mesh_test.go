package subdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kestrel-sim/latticegrid/internal/lattice"
)

func TestMeshEachOrderAndCoords(t *testing.T) {
	// 2x2 interior at global origin (10, 20) with envelope 1: padded shape
	// is 4x4, interior starts at padded (1,1).
	env := newTestEnv(t, []int{10, 20}, []int{2, 2}, 1, lattice.D2Q9())
	m := env.grid.Mesh()

	var flats []int
	var globals [][]int
	m.Each(func(flat int, global []int) {
		flats = append(flats, flat)
		globals = append(globals, append([]int(nil), global...))
	})

	// Row-major, x fastest, through the padded 4-wide array.
	wantFlats := []int{
		1*4 + 1, 1*4 + 2,
		2*4 + 1, 2*4 + 2,
	}
	if diff := cmp.Diff(wantFlats, flats); diff != "" {
		t.Errorf("flat order mismatch (-want +got):\n%s", diff)
	}

	wantGlobals := [][]int{{10, 20}, {11, 20}, {10, 21}, {11, 21}}
	if diff := cmp.Diff(wantGlobals, globals); diff != "" {
		t.Errorf("global coords mismatch (-want +got):\n%s", diff)
	}
}

func TestMeshWhere(t *testing.T) {
	env := newTestEnv(t, []int{0, 0}, []int{4, 4}, 1, lattice.D2Q9())
	m := env.grid.Mesh()

	sel := m.Where(func(p []int) bool { return p[0] == 3 })
	if len(sel) != 4 {
		t.Fatalf("selected %d nodes, want 4", len(sel))
	}
	for _, flat := range sel {
		if got := flatAt(env.grid, 3, (flat/6)-1); got != flat {
			t.Errorf("selection index %d does not lie on column x=3", flat)
		}
	}

	if n := len(m.Where(func(p []int) bool { return false })); n != 0 {
		t.Errorf("empty predicate selected %d nodes", n)
	}
}

func TestMeshCoversWholeInterior(t *testing.T) {
	env := newTestEnv(t, []int{0, 0, 0}, []int{3, 4, 5}, 1, lattice.D3Q15())
	m := env.grid.Mesh()

	seen := make(map[int]bool)
	m.Each(func(flat int, global []int) {
		if seen[flat] {
			t.Errorf("flat index %d visited twice", flat)
		}
		seen[flat] = true
	})
	if len(seen) != 3*4*5 {
		t.Errorf("visited %d nodes, want %d", len(seen), 3*4*5)
	}
}
