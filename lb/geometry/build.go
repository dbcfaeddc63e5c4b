package geometry

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/latticeflow/latticeflow/lb"
)

// cellKind classifies a lattice cell, including cells just outside the
// domain box.
type cellKind int

const (
	cellFluid cellKind = iota
	cellSolid
	// cellOpen lies one step beyond an inlet/outlet plane: not streamable,
	// but not a wall either.
	cellOpen
)

// Build realizes the spec as a single-partition lb.Geometry. Fluid cells get
// site indices in x-major order; solid cells get none. Directions into solid
// cells are obstructed with a wall halfway to the neighbor (raw distance
// 0.5, run through the setup clamp); directions leaving the box through an
// inlet or outlet face are obstructed with no wall.
func (s *Spec) Build() (*lb.Geometry, error) {
	nx, ny, nz := s.Dims[0], s.Dims[1], s.Dims[2]

	solid := func(x, y, z int) bool {
		for _, b := range s.Solids {
			if x >= b.Min[0] && x <= b.Max[0] &&
				y >= b.Min[1] && y <= b.Max[1] &&
				z >= b.Min[2] && z <= b.Max[2] {
				return true
			}
		}
		return false
	}

	openPlanes := make([]Plane, 0, len(s.Inlets)+len(s.Outlets))
	openPlanes = append(openPlanes, s.Inlets...)
	openPlanes = append(openPlanes, s.Outlets...)

	// kindAt decides what lies at (x, y, z), inside the box or one step
	// beyond it. Outside the box, a cell is open only if it sits directly
	// behind an inlet/outlet face: exactly one coordinate out of range, on
	// an axis carrying a plane at that boundary.
	kindAt := func(x, y, z int) cellKind {
		c := [3]int{x, y, z}
		outAxis, outCount := -1, 0
		for a := 0; a < 3; a++ {
			if c[a] < 0 || c[a] >= s.Dims[a] {
				outAxis = a
				outCount++
			}
		}
		switch outCount {
		case 0:
			if solid(x, y, z) {
				return cellSolid
			}
			return cellFluid
		case 1:
			boundary := 0
			if c[outAxis] >= s.Dims[outAxis] {
				boundary = s.Dims[outAxis] - 1
			}
			for _, p := range openPlanes {
				if a, _ := axisIndex(p.Axis); a == outAxis && p.Position == boundary {
					return cellOpen
				}
			}
			return cellSolid
		default:
			return cellSolid
		}
	}

	// Index fluid cells.
	index := make([]int, nx*ny*nz)
	for i := range index {
		index[i] = -1
	}
	flat := func(x, y, z int) int { return (x*ny+y)*nz + z }

	numFluid := 0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				if kindAt(x, y, z) == cellFluid {
					index[flat(x, y, z)] = numFluid
					numFluid++
				}
			}
		}
	}
	if numFluid == 0 {
		return nil, fmt.Errorf("geometry has no fluid sites")
	}

	planeFor := func(planes []Plane, x, y, z int) int {
		c := [3]int{x, y, z}
		for pi, p := range planes {
			if a, _ := axisIndex(p.Axis); c[a] == p.Position {
				return pi
			}
		}
		return -1
	}

	g := &lb.Geometry{
		Sites:           make([]lb.SiteGeometry, numFluid),
		InletDensities:  make([]float64, len(s.Inlets)),
		OutletDensities: make([]float64, len(s.Outlets)),
	}
	for pi, p := range s.Inlets {
		g.InletDensities[pi] = p.Density
	}
	for pi, p := range s.Outlets {
		g.OutletDensities[pi] = p.Density
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				i := index[flat(x, y, z)]
				if i < 0 {
					continue
				}

				site := lb.SiteGeometry{Classification: lb.Bulk, BoundaryID: -1}
				var normalSum lb.Vector

				for d := lb.Direction(0); d < lb.NumVectors; d++ {
					ex, ey, ez := d.Velocity()
					tx, ty, tz := x+ex, y+ey, z+ez

					switch kindAt(tx, ty, tz) {
					case cellFluid:
						site.Neighbors[d] = index[flat(tx, ty, tz)]
						site.WallFractions[d] = lb.NoWall
					case cellOpen:
						site.Neighbors[d] = lb.Obstructed
						site.WallFractions[d] = lb.NoWall
					case cellSolid:
						site.Neighbors[d] = lb.Obstructed
						// The wall sits halfway to the solid neighbor.
						frac, _ := lb.ClampWallFraction(0.5)
						site.WallFractions[d] = frac
						normalSum[0] -= float64(ex)
						normalSum[1] -= float64(ey)
						normalSum[2] -= float64(ez)
					}
				}

				hasWall := false
				for d := lb.Direction(1); d < lb.NumVectors; d++ {
					if site.WallFractions[d] != lb.NoWall {
						hasWall = true
					}
				}

				if pi := planeFor(s.Inlets, x, y, z); pi >= 0 {
					site.Classification = lb.Inlet
					site.BoundaryID = pi
				} else if pi := planeFor(s.Outlets, x, y, z); pi >= 0 {
					site.Classification = lb.Outlet
					site.BoundaryID = pi
				} else if hasWall {
					site.Classification = lb.NearWall
				}

				if hasWall {
					norm := math.Sqrt(normalSum[0]*normalSum[0] +
						normalSum[1]*normalSum[1] + normalSum[2]*normalSum[2])
					if norm > 0 {
						site.HasWallNormal = true
						for a := 0; a < 3; a++ {
							site.WallNormal[a] = normalSum[a] / norm
						}
					}
				}

				g.Sites[i] = site
			}
		}
	}

	logrus.Debugf("built geometry: %d fluid sites of %d cells, %d inlets, %d outlets",
		numFluid, nx*ny*nz, len(s.Inlets), len(s.Outlets))
	return g, nil
}
