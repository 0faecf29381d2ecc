package lattice

import "testing"

func TestCatalogConsistency(t *testing.T) {
	cases := []struct {
		lat *Lattice
		dim int
		q   int
	}{
		{D2Q9(), 2, 9},
		{D3Q15(), 3, 15},
		{D3Q19(), 3, 19},
		{D3Q27(), 3, 27},
	}

	for _, tc := range cases {
		if err := tc.lat.Validate(); err != nil {
			t.Errorf("%s: %v", tc.lat.Name, err)
		}
		if tc.lat.Dim != tc.dim {
			t.Errorf("%s: Dim=%d, want %d", tc.lat.Name, tc.lat.Dim, tc.dim)
		}
		if tc.lat.Q != tc.q || len(tc.lat.Basis) != tc.q {
			t.Errorf("%s: Q=%d basis=%d, want %d", tc.lat.Name, tc.lat.Q, len(tc.lat.Basis), tc.q)
		}

		// The rest vector must be present exactly once.
		rest := 0
		for _, vec := range tc.lat.Basis {
			zero := true
			for _, c := range vec {
				if c != 0 {
					zero = false
				}
			}
			if zero {
				rest++
			}
		}
		if rest != 1 {
			t.Errorf("%s: %d rest vectors, want 1", tc.lat.Name, rest)
		}
	}
}

func TestBasisVectorsUnique(t *testing.T) {
	for _, lat := range []*Lattice{D2Q9(), D3Q15(), D3Q19(), D3Q27()} {
		seen := map[[3]int]bool{}
		for _, vec := range lat.Basis {
			var key [3]int
			copy(key[:], vec)
			if seen[key] {
				t.Errorf("%s: duplicate basis vector %v", lat.Name, vec)
			}
			seen[key] = true
		}
	}
}

func TestHasVectorAlong(t *testing.T) {
	lat := D2Q9()
	for axis := 0; axis < 2; axis++ {
		for _, dir := range []int{-1, 1} {
			if !lat.HasVectorAlong(axis, dir) {
				t.Errorf("D2Q9 missing direction axis=%d dir=%d", axis, dir)
			}
		}
	}
	if lat.HasVectorAlong(2, 1) {
		t.Error("D2Q9 should have no Z component")
	}
}

func TestByName(t *testing.T) {
	lat, err := ByName("D3Q19")
	if err != nil {
		t.Fatalf("ByName(D3Q19): %v", err)
	}
	if lat.Q != 19 {
		t.Errorf("Q=%d, want 19", lat.Q)
	}
	if _, err := ByName("D4Q81"); err == nil {
		t.Error("expected error for unknown lattice")
	}
}
