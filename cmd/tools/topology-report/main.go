// Command topology-report builds the inter-region connection topology for a
// domain layout and prints the per-region halo-exchange schedule.
//
// The layout is a JSON file describing the global domain, its periodicity and
// the rectangular regions it decomposes into. Every region pair is offered a
// connection; periodic axes additionally connect edge regions through virtual
// translated copies. The resulting schedule is what the exchange layer would
// execute, so this tool doubles as a decomposition sanity check.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/kestrel-sim/latticegrid/internal/config"
	"github.com/kestrel-sim/latticegrid/internal/domain"
	"github.com/kestrel-sim/latticegrid/internal/lattice"
	"github.com/kestrel-sim/latticegrid/internal/monitoring"
	"github.com/kestrel-sim/latticegrid/internal/version"
)

// faceSpan is the overlap descriptor this tool feeds the topology: the
// identity of the region whose data it indexes plus the global transverse
// extent shared across the face.
type faceSpan struct {
	regionID int
	face     domain.Face
	lo, hi   []int
}

func (s *faceSpan) RegionID() int { return s.regionID }

// spanMaker builds faceSpan descriptors. It refuses faces the lattice has no
// directions through, and region pairs whose transverse extents do not
// overlap (touching corner-to-corner counts as no overlap).
type spanMaker struct{}

func (spanMaker) Make(src, dst *domain.RegionSpec, face domain.Face, lat *lattice.Lattice) (domain.ConnectionDescriptor, bool) {
	if !lat.HasVectorAlong(face.Axis(), face.Direction()) {
		return nil, false
	}

	axis := face.Axis()
	dim := src.Dim()
	lo := make([]int, 0, dim-1)
	hi := make([]int, 0, dim-1)
	for a := 0; a < dim; a++ {
		if a == axis {
			continue
		}
		l := max(src.Location[a], dst.Location[a])
		h := min(src.End(a), dst.End(a))
		if l >= h {
			return nil, false
		}
		lo = append(lo, l)
		hi = append(hi, h)
	}
	return &faceSpan{regionID: src.ID, face: face, lo: lo, hi: hi}, true
}

// regionReport is one region's schedule entry in the JSON output.
type regionReport struct {
	ID          int          `json:"id"`
	Nodes       int          `json:"nodes"`
	Connections []connReport `json:"connections"`
}

type connReport struct {
	Face   string `json:"face"`
	Remote int    `json:"remote"`
}

type report struct {
	RunID      string         `json:"run_id"`
	Lattice    string         `json:"lattice"`
	Envelope   int            `json:"envelope_size"`
	DomainSize []int          `json:"domain_size"`
	Regions    []regionReport `json:"regions"`
	MeanNodes  float64        `json:"mean_nodes"`
	StdevNodes float64        `json:"stdev_nodes"`
}

func main() {
	layoutPath := flag.String("layout", "", "path to the JSON layout file")
	jsonOut := flag.Bool("json", false, "emit the report as JSON")
	verbose := flag.Bool("verbose", false, "log per-pair connection attempts")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("topology-report", version.String())
		return
	}
	if *layoutPath == "" {
		fmt.Fprintln(os.Stderr, "usage: topology-report -layout <layout.json> [-json] [-verbose]")
		os.Exit(2)
	}
	monitoring.Verbose = *verbose

	layout, err := config.LoadLayout(*layoutPath)
	if err != nil {
		log.Fatalf("load layout: %v", err)
	}
	lat, err := lattice.ByName(layout.GetLattice())
	if err != nil {
		log.Fatalf("resolve lattice: %v", err)
	}

	regions, err := buildRegions(layout)
	if err != nil {
		log.Fatalf("build regions: %v", err)
	}
	if err := connectAll(regions, layout, lat); err != nil {
		log.Fatalf("connect regions: %v", err)
	}

	rep := buildReport(regions, layout, lat)
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}
	printReport(rep)
}

func buildRegions(layout *config.Layout) ([]*domain.RegionSpec, error) {
	es := layout.GetEnvelopeSize()
	regions := make([]*domain.RegionSpec, 0, len(layout.Regions))
	for _, rl := range layout.Regions {
		r, err := domain.NewRegionSpec(rl.ID, rl.Location, rl.Size)
		if err != nil {
			return nil, err
		}
		if err := r.SetEnvelope(es); err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// connectAll offers a connection to every ordered region pair and wires
// periodic wrap pairs through virtual translated copies. Regions spanning a
// full periodic axis become locally periodic instead.
func connectAll(regions []*domain.RegionSpec, layout *config.Layout, lat *lattice.Lattice) error {
	maker := spanMaker{}

	for i, a := range regions {
		for j, b := range regions {
			if i >= j {
				continue
			}
			ok, err := a.Connect(domain.SelfPair(b), maker, lat)
			if err != nil {
				return err
			}
			monitoring.Debugf("connect %d <-> %d: %v", a.ID, b.ID, ok)
		}
	}

	for axis, periodic := range layout.GetPeriodic() {
		if !periodic {
			continue
		}
		span := layout.DomainSize[axis]
		shift := make([]int, len(layout.DomainSize))
		shift[axis] = -span

		for _, a := range regions {
			if a.Location[axis] != 0 {
				continue
			}
			for _, b := range regions {
				if b.End(axis) != span {
					continue
				}
				if a.ID == b.ID {
					if err := a.EnableLocalPeriodicity(axis); err != nil {
						return err
					}
					monitoring.Debugf("region %d: locally periodic along axis %d", a.ID, axis)
					continue
				}
				ok, err := a.Connect(domain.RegionPair{Real: b, Virtual: b.Translated(shift)}, maker, lat)
				if err != nil {
					return err
				}
				monitoring.Debugf("periodic connect %d <-> %d (axis %d): %v", a.ID, b.ID, axis, ok)
			}
		}
	}
	return nil
}

func buildReport(regions []*domain.RegionSpec, layout *config.Layout, lat *lattice.Lattice) *report {
	rep := &report{
		RunID:      uuid.NewString(),
		Lattice:    lat.Name,
		Envelope:   layout.GetEnvelopeSize(),
		DomainSize: layout.DomainSize,
	}

	nodes := make([]float64, 0, len(regions))
	for _, r := range regions {
		rr := regionReport{ID: r.ID, Nodes: r.NumNodes()}
		for _, fr := range r.ConnectedRegions() {
			rr.Connections = append(rr.Connections, connReport{
				Face:   fr.Face.String(),
				Remote: fr.RegionID,
			})
		}
		rep.Regions = append(rep.Regions, rr)
		nodes = append(nodes, float64(r.NumNodes()))
	}

	rep.MeanNodes = stat.Mean(nodes, nil)
	if len(nodes) > 1 {
		rep.StdevNodes = stat.StdDev(nodes, nil)
	}
	return rep
}

func printReport(rep *report) {
	fmt.Printf("topology run %s\n", rep.RunID)
	fmt.Printf("lattice %s, envelope %d, domain %v\n", rep.Lattice, rep.Envelope, rep.DomainSize)
	fmt.Printf("regions: %d, mean nodes %.1f, stdev %.1f\n\n",
		len(rep.Regions), rep.MeanNodes, rep.StdevNodes)

	for _, rr := range rep.Regions {
		fmt.Printf("region %d (%d nodes)\n", rr.ID, rr.Nodes)
		if len(rr.Connections) == 0 {
			fmt.Println("  no connections")
			continue
		}
		for _, c := range rr.Connections {
			fmt.Printf("  %-7s -> region %d\n", c.Face, c.Remote)
		}
	}
}
