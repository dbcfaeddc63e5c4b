package lb

import "math"

// Extrema accumulates running minima and maxima of the macroscopic fields
// over one pass. It is an explicit value passed into each pass and merged
// across workers, never shared mutable state. Consumed by visualization at
// end of step; a stability monitor layered on top flags divergence from the
// same numbers.
type Extrema struct {
	DensityMin, DensityMax   float64
	VelocityMin, VelocityMax Vector
	StressMin, StressMax     float64
}

// NewExtrema returns a tracker in its reset (sentinel) state.
func NewExtrema() *Extrema {
	e := &Extrema{}
	e.Reset()
	return e
}

// Reset restores the uninitialized sentinel state. Must be called between
// passes; extrema never carry over across steps.
func (e *Extrema) Reset() {
	e.DensityMin = math.Inf(1)
	e.DensityMax = math.Inf(-1)
	e.StressMin = math.Inf(1)
	e.StressMax = math.Inf(-1)
	for a := 0; a < 3; a++ {
		e.VelocityMin[a] = math.Inf(1)
		e.VelocityMax[a] = math.Inf(-1)
	}
}

// Observe folds one site's diagnostics into the running extrema.
func (e *Extrema) Observe(density float64, velocity Vector, stress float64) {
	e.DensityMin = math.Min(e.DensityMin, density)
	e.DensityMax = math.Max(e.DensityMax, density)
	e.StressMin = math.Min(e.StressMin, stress)
	e.StressMax = math.Max(e.StressMax, stress)
	for a := 0; a < 3; a++ {
		e.VelocityMin[a] = math.Min(e.VelocityMin[a], velocity[a])
		e.VelocityMax[a] = math.Max(e.VelocityMax[a], velocity[a])
	}
}

// Merge folds another tracker into this one. Used to combine per-worker
// accumulators after a parallel pass.
func (e *Extrema) Merge(other *Extrema) {
	e.DensityMin = math.Min(e.DensityMin, other.DensityMin)
	e.DensityMax = math.Max(e.DensityMax, other.DensityMax)
	e.StressMin = math.Min(e.StressMin, other.StressMin)
	e.StressMax = math.Max(e.StressMax, other.StressMax)
	for a := 0; a < 3; a++ {
		e.VelocityMin[a] = math.Min(e.VelocityMin[a], other.VelocityMin[a])
		e.VelocityMax[a] = math.Max(e.VelocityMax[a], other.VelocityMax[a])
	}
}

// stressTensor computes the non-equilibrium momentum-flux tensor
// Pi_ab = sum_i f_neq_i e_ia e_ib, packed as
// [xx, yy, zz, xy, yz, xz].
func stressTensor(fNeq *Distribution) [6]float64 {
	var pi [6]float64
	for i := 1; i < NumVectors; i++ {
		e := directions[i]
		ex, ey, ez := float64(e[0]), float64(e[1]), float64(e[2])
		pi[0] += fNeq[i] * ex * ex
		pi[1] += fNeq[i] * ey * ey
		pi[2] += fNeq[i] * ez * ez
		pi[3] += fNeq[i] * ex * ey
		pi[4] += fNeq[i] * ey * ez
		pi[5] += fNeq[i] * ex * ez
	}
	return pi
}

// VonMisesStress is the isotropic stress measure used where no wall normal
// is known: the von Mises invariant of the non-equilibrium stress tensor,
// scaled by the parameter set's stress prefactor.
func VonMisesStress(fNeq *Distribution, scale float64) float64 {
	pi := stressTensor(fNeq)
	diff := (pi[0]-pi[1])*(pi[0]-pi[1]) +
		(pi[1]-pi[2])*(pi[1]-pi[2]) +
		(pi[2]-pi[0])*(pi[2]-pi[0])
	shear := pi[3]*pi[3] + pi[4]*pi[4] + pi[5]*pi[5]
	return scale * math.Sqrt(0.5*diff+3.0*shear)
}

// WallShearStress is the magnitude of the tangential traction on a wall
// with unit normal n: |Pi.n - (n.Pi.n)n| scaled by the stress prefactor.
func WallShearStress(fNeq *Distribution, normal Vector, scale float64) float64 {
	pi := stressTensor(fNeq)
	traction := Vector{
		pi[0]*normal[0] + pi[3]*normal[1] + pi[5]*normal[2],
		pi[3]*normal[0] + pi[1]*normal[1] + pi[4]*normal[2],
		pi[5]*normal[0] + pi[4]*normal[1] + pi[2]*normal[2],
	}
	normalComp := traction[0]*normal[0] + traction[1]*normal[1] + traction[2]*normal[2]
	tangSq := traction[0]*traction[0] + traction[1]*traction[1] + traction[2]*traction[2] -
		normalComp*normalComp
	if tangSq < 0 {
		tangSq = 0
	}
	return scale * math.Sqrt(tangSq)
}

// SiteStress picks the stress measure for site i: wall shear stress where a
// wall normal is known, the von Mises invariant otherwise.
func SiteStress(s *SiteStore, i int, fNeq *Distribution, scale float64) float64 {
	if normal, ok := s.WallNormal(i); ok {
		return WallShearStress(fNeq, normal, scale)
	}
	return VonMisesStress(fNeq, scale)
}
