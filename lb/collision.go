package lb

// stream writes a post-collision value for direction d of site i to wherever
// it belongs: the local neighbor's next buffer, the transport for remote
// neighbors, or — for obstructed directions — reflected into the site's own
// slot for the opposite direction, since no neighbor exists to stream into
// and no neighbor exists to fill that slot.
func stream(s *SiteStore, tr Transport, i int, d Direction, value float64) {
	switch target := s.Target(i, d); target {
	case Obstructed:
		// Bounce the population back onto this site. For walled directions
		// the Guo-Zheng-Shi pass overwrites this slot with the interpolated
		// reconstruction; for open inlet/outlet faces the reflection is the
		// value that keeps the boundary populated each step.
		s.WriteNext(i, d.Inverse(), value)
	case RemoteTarget:
		ref, _ := s.Remote(i, d)
		tr.Deliver(ref, d, value)
	default:
		s.WriteNext(target, d, value)
	}
}

// collideStreamBGK advances one bulk (or near-wall) site with the
// single-relaxation-time rule: every direction relaxes toward equilibrium by
// Omega*f_neq and streams one lattice step along its own vector. The rest
// direction streams onto the site itself. Returns the site's moments and
// non-equilibrium parts for reuse by the wall treatment and the extrema
// tracker.
func collideStreamBGK(s *SiteStore, p *Parameters, tr Transport, i int) (density float64, velocity Vector, fNeq Distribution) {
	f := s.Current(i)
	density, velocity, fEq := CalcDensityVelocityFEq(f)
	for d := Direction(0); d < NumVectors; d++ {
		fNeq[d] = f[d] - fEq[d]
		stream(s, tr, i, d, f[d]+p.Omega*fNeq[d])
	}
	return density, velocity, fNeq
}

// collideStreamInlet advances an inlet site: density is pinned to the
// inlet's boundary density, velocity is taken from the local momenta at that
// density, and the post-collision state is the full equilibrium (complete
// relaxation).
func collideStreamInlet(s *SiteStore, tr Transport, i int) (density float64, velocity Vector, fNeq Distribution) {
	f := s.Current(i)
	density = s.BoundaryDensity(i)
	velocity = CalcVelocity(f, density)
	fEq := CalcFEq(density, velocity)
	for d := Direction(0); d < NumVectors; d++ {
		fNeq[d] = f[d] - fEq[d]
		stream(s, tr, i, d, fEq[d])
	}
	return density, velocity, fNeq
}

// collideStreamOutlet advances an outlet site: boundary density, zero
// velocity, equilibrium streamed.
func collideStreamOutlet(s *SiteStore, tr Transport, i int) (density float64, velocity Vector, fNeq Distribution) {
	f := s.Current(i)
	density = s.BoundaryDensity(i)
	fEq := CalcFEq(density, Vector{})
	for d := Direction(0); d < NumVectors; d++ {
		fNeq[d] = f[d] - fEq[d]
		stream(s, tr, i, d, fEq[d])
	}
	return density, Vector{}, fNeq
}

// collideStreamZeroVelocity is the degraded wall treatment for sites with no
// wall-fraction data: relax fully to the zero-velocity equilibrium at the
// local density.
func collideStreamZeroVelocity(s *SiteStore, tr Transport, i int) (density float64, velocity Vector, fNeq Distribution) {
	f := s.Current(i)
	density = CalcDensity(f)
	fEq := CalcFEq(density, Vector{})
	for d := Direction(0); d < NumVectors; d++ {
		fNeq[d] = f[d] - fEq[d]
		stream(s, tr, i, d, fEq[d])
	}
	return density, Vector{}, fNeq
}
