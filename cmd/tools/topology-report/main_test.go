package main

import (
	"testing"

	"github.com/kestrel-sim/latticegrid/internal/config"
	"github.com/kestrel-sim/latticegrid/internal/domain"
	"github.com/kestrel-sim/latticegrid/internal/lattice"
)

func intPtr(v int) *int { return &v }

func testLayout() *config.Layout {
	return &config.Layout{
		EnvelopeSize: intPtr(1),
		DomainSize:   []int{8, 4},
		Periodic:     []bool{true, false},
		Regions: []config.RegionLayout{
			{ID: 1, Location: []int{0, 0}, Size: []int{4, 4}},
			{ID: 2, Location: []int{4, 0}, Size: []int{4, 4}},
		},
	}
}

func TestSpanMakerOverlap(t *testing.T) {
	maker := spanMaker{}
	lat := lattice.D2Q9()

	a, _ := domain.NewRegionSpec(1, []int{0, 0}, []int{4, 4})
	b, _ := domain.NewRegionSpec(2, []int{4, 0}, []int{4, 4})

	desc, ok := maker.Make(a, b, domain.XHigh, lat)
	if !ok {
		t.Fatal("overlapping faces refused")
	}
	if desc.RegionID() != 1 {
		t.Errorf("descriptor indexes region %d, want 1", desc.RegionID())
	}
	span := desc.(*faceSpan)
	if span.lo[0] != 0 || span.hi[0] != 4 {
		t.Errorf("transverse span [%d,%d), want [0,4)", span.lo[0], span.hi[0])
	}

	// Corner-touching regions share no transverse extent.
	c, _ := domain.NewRegionSpec(3, []int{4, 4}, []int{4, 4})
	if _, ok := maker.Make(a, c, domain.XHigh, lat); ok {
		t.Error("corner contact produced a descriptor")
	}
}

func TestConnectAllWithPeriodicWrap(t *testing.T) {
	layout := testLayout()
	lat := lattice.D2Q9()

	regions, err := buildRegions(layout)
	if err != nil {
		t.Fatal(err)
	}
	if err := connectAll(regions, layout, lat); err != nil {
		t.Fatal(err)
	}

	a, b := regions[0], regions[1]

	// Direct adjacency plus the wrap: A reaches B on both X faces.
	if len(a.ConnectionsOnFace(domain.XHigh, b.ID)) != 1 {
		t.Error("A missing direct x_high connection to B")
	}
	if len(a.ConnectionsOnFace(domain.XLow, b.ID)) != 1 {
		t.Error("A missing periodic x_low connection to B")
	}
	if len(b.ConnectionsOnFace(domain.XLow, a.ID)) != 1 || len(b.ConnectionsOnFace(domain.XHigh, a.ID)) != 1 {
		t.Error("B connection lists incomplete")
	}
	if a.HasFaceConnection(domain.YLow) || a.HasFaceConnection(domain.YHigh) {
		t.Error("unexpected Y connections on a non-periodic axis")
	}
}

func TestConnectAllLocalPeriodicity(t *testing.T) {
	layout := &config.Layout{
		DomainSize: []int{4, 4},
		Periodic:   []bool{true, true},
		Regions: []config.RegionLayout{
			{ID: 1, Location: []int{0, 0}, Size: []int{4, 4}},
		},
	}

	regions, err := buildRegions(layout)
	if err != nil {
		t.Fatal(err)
	}
	if err := connectAll(regions, layout, lattice.D2Q9()); err != nil {
		t.Fatal(err)
	}

	r := regions[0]
	if !r.Periodic(0) || !r.Periodic(1) {
		t.Error("region spanning the domain should be locally periodic on both axes")
	}
	if len(r.ConnectedRegions()) != 0 {
		t.Error("single spanning region should have no remote connections")
	}
}

func TestBuildReport(t *testing.T) {
	layout := testLayout()
	lat := lattice.D2Q9()

	regions, err := buildRegions(layout)
	if err != nil {
		t.Fatal(err)
	}
	if err := connectAll(regions, layout, lat); err != nil {
		t.Fatal(err)
	}

	rep := buildReport(regions, layout, lat)
	if rep.RunID == "" {
		t.Error("missing run id")
	}
	if rep.Lattice != "D2Q9" || rep.Envelope != 1 {
		t.Errorf("report header wrong: %+v", rep)
	}
	if len(rep.Regions) != 2 {
		t.Fatalf("report has %d regions, want 2", len(rep.Regions))
	}
	if rep.MeanNodes != 16 {
		t.Errorf("mean nodes=%f, want 16", rep.MeanNodes)
	}
	if rep.StdevNodes != 0 {
		t.Errorf("stdev=%f, want 0 for equal regions", rep.StdevNodes)
	}
	for _, rr := range rep.Regions {
		if len(rr.Connections) != 2 {
			t.Errorf("region %d has %d connections, want 2", rr.ID, len(rr.Connections))
		}
	}
}
