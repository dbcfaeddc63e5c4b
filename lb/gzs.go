package lb

// applyGuoZhengShi reconstructs the populations a straight streaming step
// cannot produce: those arriving from directions blocked by a wall. For each
// walled direction d it synthesizes the value entering along Inverse(d) from
// the no-slip condition at the wall-distance fraction delta and, where a
// valid fluid site exists one further step from the wall, a second-order
// extrapolation from that site's moments. The result is written into the
// site's own next buffer, replacing the plain reflection stream left there.
//
// density, velocity and fNeq are the moments the classification kernel
// already computed for this site from the current buffer.
func applyGuoZhengShi(s *SiteStore, p *Parameters, i int, density float64, velocity Vector, fNeq *Distribution) {
	for d := Direction(1); d < NumVectors; d++ {
		delta := s.WallFraction(i, d)
		if delta == NoWall {
			continue
		}

		away := d.Inverse()

		// No-slip at the wall, extrapolated back to the missing node.
		var uWall Vector
		uWall[0] = (1.0 - 1.0/delta) * velocity[0]
		uWall[1] = (1.0 - 1.0/delta) * velocity[1]
		uWall[2] = (1.0 - 1.0/delta) * velocity[2]
		neq := fNeq[away]

		if delta < 0.75 {
			far := s.Target(i, away)
			// A remote far neighbor deliberately takes the degraded zero
			// fallback: its current buffer is not readable from this rank.
			if far >= 0 {
				// Second-order blend with the next fluid site away from
				// the wall.
				farF := s.Current(far)
				_, farV, farFEq := CalcDensityVelocityFEq(farF)
				for a := 0; a < 3; a++ {
					uWall[a] = delta*uWall[a] + (1.0-delta)*(delta-1.0)*farV[a]/(1.0+delta)
				}
				neq = delta*neq + (1.0-delta)*(farF[away]-farFEq[away])
			} else {
				// Nothing to extrapolate from; fall back to zero rather
				// than keep the near-wall estimate.
				uWall = Vector{}
				neq = 0.0
			}
		}

		// Equilibrium at the local density but the reconstructed wall
		// velocity.
		fEqWall := CalcFEq(density, uWall)
		s.WriteNext(i, away, fEqWall[away]+(1.0+p.Omega)*neq)
	}
}
