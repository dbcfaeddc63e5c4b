package lb

import (
	"fmt"
)

// Classification labels how a site is updated each step. A NearWall, Inlet
// or Outlet site may additionally carry wall fractions; the wall treatment
// composes with the classification kernel rather than replacing it.
type Classification int

const (
	Bulk Classification = iota
	NearWall
	Inlet
	Outlet
)

func (c Classification) String() string {
	switch c {
	case Bulk:
		return "bulk"
	case NearWall:
		return "near-wall"
	case Inlet:
		return "inlet"
	case Outlet:
		return "outlet"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// Streaming target sentinels. A non-negative target is a local site index.
const (
	// Obstructed marks a direction blocked by a wall; the Guo-Zheng-Shi
	// treatment produces the missing population instead of streaming.
	Obstructed = -1
	// RemoteTarget marks a direction whose neighbor is owned by another
	// partition; the post-collision value is handed to the Transport.
	RemoteTarget = -2
)

// NoWall is the wall-fraction sentinel for directions with no wall.
const NoWall = -1.0

// RemoteRef identifies a site owned by another partition.
type RemoteRef struct {
	Rank int // owning partition
	Site int // site index within that partition
}

// SiteGeometry is the static per-site metadata produced by domain setup.
// Immutable once a SiteStore is built from it.
type SiteGeometry struct {
	Classification Classification
	// Neighbors[d] is the local streaming target in direction d, or
	// Obstructed / RemoteTarget. Neighbors[Rest] must equal the site's own
	// index.
	Neighbors [NumVectors]int
	// WallFractions[d] is the fractional wall distance in (0, 0.5] along
	// direction d, or NoWall. Builders clamp via ClampWallFraction.
	WallFractions [NumVectors]float64
	// Remotes maps directions with Neighbors[d] == RemoteTarget to the
	// remote site. Nil when the site has no cross-partition neighbors.
	Remotes map[Direction]RemoteRef
	// HasWallNormal and WallNormal give the unit wall normal for stress
	// computation on sites adjacent to a wall.
	HasWallNormal bool
	WallNormal    Vector
	// BoundaryID indexes the inlet or outlet density table for Inlet and
	// Outlet sites.
	BoundaryID int
}

// Geometry is the full static description of a local partition.
type Geometry struct {
	Sites           []SiteGeometry
	InletDensities  []float64
	OutletDensities []float64
}

// ClampWallFraction applies the setup-time clamp on a raw wall distance.
// Raw distances at or beyond the halfway point are pinned to exactly 0.5;
// non-positive distances mean no wall at all rather than a degenerate zero
// fraction.
func ClampWallFraction(raw float64) (float64, bool) {
	if raw <= 0 {
		return NoWall, false
	}
	if raw >= 0.5 {
		return 0.5, true
	}
	return raw, true
}

// SiteStore holds the double-buffered distributions and static geometry of
// one partition. All reads during a step come from the current buffer, all
// writes go to the next buffer; Swap exchanges the two by pointer only.
type SiteStore struct {
	n int

	fCurrent []float64 // n * NumVectors
	fNext    []float64

	class     []Classification
	wallFrac  []float64 // n * NumVectors, NoWall sentinel
	hasWall   []bool    // any wall fraction on the site
	targets   []int     // n * NumVectors
	remotes   map[int]RemoteRef
	normals   []Vector
	hasNormal []bool
	boundary  []int

	inletDensities  []float64
	outletDensities []float64
}

// NewSiteStore validates the geometry and builds a store with both buffers
// zeroed. Malformed geometry is a setup-time contract violation and is
// rejected here, never during a step.
func NewSiteStore(g *Geometry) (*SiteStore, error) {
	n := len(g.Sites)
	if n == 0 {
		return nil, fmt.Errorf("geometry has no sites")
	}

	s := &SiteStore{
		n:               n,
		fCurrent:        make([]float64, n*NumVectors),
		fNext:           make([]float64, n*NumVectors),
		class:           make([]Classification, n),
		wallFrac:        make([]float64, n*NumVectors),
		hasWall:         make([]bool, n),
		targets:         make([]int, n*NumVectors),
		remotes:         make(map[int]RemoteRef),
		normals:         make([]Vector, n),
		hasNormal:       make([]bool, n),
		boundary:        make([]int, n),
		inletDensities:  g.InletDensities,
		outletDensities: g.OutletDensities,
	}

	for i, site := range g.Sites {
		s.class[i] = site.Classification
		s.normals[i] = site.WallNormal
		s.hasNormal[i] = site.HasWallNormal
		s.boundary[i] = site.BoundaryID

		switch site.Classification {
		case Inlet:
			if site.BoundaryID < 0 || site.BoundaryID >= len(g.InletDensities) {
				return nil, fmt.Errorf("site %d: inlet boundary id %d out of range", i, site.BoundaryID)
			}
		case Outlet:
			if site.BoundaryID < 0 || site.BoundaryID >= len(g.OutletDensities) {
				return nil, fmt.Errorf("site %d: outlet boundary id %d out of range", i, site.BoundaryID)
			}
		}

		if site.Neighbors[Rest] != i {
			return nil, fmt.Errorf("site %d: rest direction must stream to itself, got %d", i, site.Neighbors[Rest])
		}

		for d := 0; d < NumVectors; d++ {
			target := site.Neighbors[d]
			frac := site.WallFractions[d]

			switch {
			case target >= 0 && target < n:
			case target == Obstructed:
				if frac == NoWall && site.Classification == NearWall {
					return nil, fmt.Errorf("site %d: direction %d obstructed without a wall fraction", i, d)
				}
			case target == RemoteTarget:
				ref, ok := site.Remotes[Direction(d)]
				if !ok {
					return nil, fmt.Errorf("site %d: direction %d marked remote without a remote ref", i, d)
				}
				s.remotes[i*NumVectors+d] = ref
			default:
				return nil, fmt.Errorf("site %d: direction %d streams to invalid site %d", i, d, target)
			}

			if frac != NoWall {
				if frac <= 0 || frac > 0.5 {
					return nil, fmt.Errorf("site %d: wall fraction %g in direction %d outside (0, 0.5]", i, frac, d)
				}
				if target != Obstructed {
					return nil, fmt.Errorf("site %d: wall fraction set but direction %d not obstructed", i, d)
				}
				s.hasWall[i] = true
			}

			s.targets[i*NumVectors+d] = target
			s.wallFrac[i*NumVectors+d] = frac
		}
	}

	return s, nil
}

// NumSites returns the number of sites in the local partition.
func (s *SiteStore) NumSites() int { return s.n }

// Classification returns the update kind of site i.
func (s *SiteStore) Classification(i int) Classification { return s.class[i] }

// HasWallFractions reports whether any direction of site i is walled.
func (s *SiteStore) HasWallFractions(i int) bool { return s.hasWall[i] }

// WallFraction returns the wall distance fraction of site i in direction d,
// or NoWall.
func (s *SiteStore) WallFraction(i int, d Direction) float64 {
	return s.wallFrac[i*NumVectors+int(d)]
}

// WallNormal returns the unit wall normal of site i, if one is known.
func (s *SiteStore) WallNormal(i int) (Vector, bool) {
	return s.normals[i], s.hasNormal[i]
}

// Target returns the streaming destination of site i in direction d: a local
// site index, Obstructed, or RemoteTarget.
func (s *SiteStore) Target(i int, d Direction) int {
	return s.targets[i*NumVectors+int(d)]
}

// Remote resolves a RemoteTarget direction to its cross-partition reference.
func (s *SiteStore) Remote(i int, d Direction) (RemoteRef, bool) {
	ref, ok := s.remotes[i*NumVectors+int(d)]
	return ref, ok
}

// BoundaryDensity returns the fixed density of the inlet or outlet that site
// i belongs to.
func (s *SiteStore) BoundaryDensity(i int) float64 {
	if s.class[i] == Inlet {
		return s.inletDensities[s.boundary[i]]
	}
	return s.outletDensities[s.boundary[i]]
}

// Current returns the current-buffer distribution of site i. The returned
// pointer aliases the buffer; callers must not hold it across Swap.
func (s *SiteStore) Current(i int) *Distribution {
	return (*Distribution)(s.fCurrent[i*NumVectors : (i+1)*NumVectors])
}

// SetCurrent overwrites the current-buffer distribution of site i. Intended
// for initialization and for transport deliveries between steps.
func (s *SiteStore) SetCurrent(i int, f Distribution) {
	copy(s.fCurrent[i*NumVectors:(i+1)*NumVectors], f[:])
}

// SetCurrentAt overwrites a single direction of site i's current buffer.
// Used by the transport to deliver externally-computed populations.
func (s *SiteStore) SetCurrentAt(i int, d Direction, v float64) {
	s.fCurrent[i*NumVectors+int(d)] = v
}

// WriteNext stores a post-collision value into site i's next buffer at
// direction d.
func (s *SiteStore) WriteNext(i int, d Direction, v float64) {
	s.fNext[i*NumVectors+int(d)] = v
}

// Next returns the next-buffer distribution of site i.
func (s *SiteStore) Next(i int) *Distribution {
	return (*Distribution)(s.fNext[i*NumVectors : (i+1)*NumVectors])
}

// Swap exchanges the current and next buffers. Called exactly once per step,
// after the full pass over all local sites.
func (s *SiteStore) Swap() {
	s.fCurrent, s.fNext = s.fNext, s.fCurrent
}

// InitEquilibrium fills the current buffer of every site with the
// equilibrium distribution at the given density and velocity.
func (s *SiteStore) InitEquilibrium(density float64, velocity Vector) {
	fEq := CalcFEq(density, velocity)
	for i := 0; i < s.n; i++ {
		s.SetCurrent(i, fEq)
	}
}

// TotalMass sums the current buffer over all sites and directions.
func (s *SiteStore) TotalMass() float64 {
	total := 0.0
	for _, v := range s.fCurrent {
		total += v
	}
	return total
}
