package lb

import "testing"

// periodicGeometry builds a fully periodic nx*ny*nz bulk lattice: every
// direction wraps around, no walls, no inlets or outlets. Closed in the
// sense that streaming never leaves the partition.
func periodicGeometry(nx, ny, nz int) *Geometry {
	flat := func(x, y, z int) int {
		return (x*ny+y)*nz + z
	}
	wrap := func(v, n int) int {
		return ((v % n) + n) % n
	}

	sites := make([]SiteGeometry, nx*ny*nz)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				site := SiteGeometry{Classification: Bulk}
				for d := Direction(0); d < NumVectors; d++ {
					ex, ey, ez := d.Velocity()
					site.Neighbors[d] = flat(wrap(x+ex, nx), wrap(y+ey, ny), wrap(z+ez, nz))
					site.WallFractions[d] = NoWall
				}
				sites[flat(x, y, z)] = site
			}
		}
	}
	return &Geometry{Sites: sites}
}

// selfGeometry builds a single site whose every direction streams back onto
// itself. Streaming becomes the identity, which isolates the collision rule.
func selfGeometry() *Geometry {
	site := SiteGeometry{Classification: Bulk}
	for d := Direction(0); d < NumVectors; d++ {
		site.Neighbors[d] = 0
		site.WallFractions[d] = NoWall
	}
	return &Geometry{Sites: []SiteGeometry{site}}
}

// openChainGeometry builds an n-site chain along x, periodic in y and z,
// open at both ends: site 0 is an inlet and site n-1 an outlet, and the
// x-facing directions that would leave the domain are obstructed without a
// wall fraction. The shape of a straight duct cut perpendicular to the flow.
func openChainGeometry(n int, inletDensity, outletDensity float64) *Geometry {
	sites := make([]SiteGeometry, n)
	for i := 0; i < n; i++ {
		site := SiteGeometry{Classification: Bulk}
		for d := Direction(0); d < NumVectors; d++ {
			ex, _, _ := d.Velocity()
			tx := i + ex
			if tx < 0 || tx >= n {
				site.Neighbors[d] = Obstructed
				site.WallFractions[d] = NoWall
			} else {
				site.Neighbors[d] = tx
				site.WallFractions[d] = NoWall
			}
		}
		sites[i] = site
	}
	sites[0].Classification = Inlet
	sites[n-1].Classification = Outlet
	return &Geometry{
		Sites:           sites,
		InletDensities:  []float64{inletDensity},
		OutletDensities: []float64{outletDensity},
	}
}

// mustStore builds a SiteStore or fails the test.
func mustStore(t *testing.T, g *Geometry) *SiteStore {
	t.Helper()
	s, err := NewSiteStore(g)
	if err != nil {
		t.Fatalf("NewSiteStore: %v", err)
	}
	return s
}

// rampDistribution is the reference fixture: f[i] = (i+1)/10.
func rampDistribution() Distribution {
	var f Distribution
	for i := 0; i < NumVectors; i++ {
		f[i] = float64(i+1) / 10.0
	}
	return f
}
