package lb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection_Inverse_Involution(t *testing.T) {
	// GIVEN the D3Q15 direction set
	// WHEN every direction's inverse is inverted again
	// THEN the original direction comes back, and the velocity of the
	// inverse is the negation
	for d := Direction(0); d < NumVectors; d++ {
		inv := d.Inverse()
		if inv.Inverse() != d {
			t.Errorf("Inverse(Inverse(%d)) = %d, want %d", d, inv.Inverse(), d)
		}
		ex, ey, ez := d.Velocity()
		ix, iy, iz := inv.Velocity()
		if ix != -ex || iy != -ey || iz != -ez {
			t.Errorf("direction %d inverse %d: velocity (%d,%d,%d) is not the negation of (%d,%d,%d)",
				d, inv, ix, iy, iz, ex, ey, ez)
		}
	}
}

func TestDirection_Rest_SelfInverse(t *testing.T) {
	assert.Equal(t, Rest, Rest.Inverse())
	ex, ey, ez := Rest.Velocity()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{ex, ey, ez})
}

func TestWeights_SumToOne(t *testing.T) {
	total := 0.0
	for d := Direction(0); d < NumVectors; d++ {
		total += d.Weight()
	}
	if math.Abs(total-1.0) > 1e-15 {
		t.Errorf("weights sum to %v, want 1", total)
	}
}

func TestCalcFEq_ZerothAndFirstMoments(t *testing.T) {
	// GIVEN an equilibrium distribution at a known density and velocity
	density := 1.3
	velocity := Vector{0.05, -0.02, 0.01}
	fEq := CalcFEq(density, velocity)

	// THEN its zeroth moment is the density and its first moment over
	// density is the velocity (the expansion is exact in these moments)
	gotDensity := CalcDensity(&fEq)
	if math.Abs(gotDensity-density) > 1e-12 {
		t.Errorf("density of fEq: got %v, want %v", gotDensity, density)
	}
	gotVelocity := CalcVelocity(&fEq, gotDensity)
	for a := 0; a < 3; a++ {
		if math.Abs(gotVelocity[a]-velocity[a]) > 1e-12 {
			t.Errorf("velocity[%d] of fEq: got %v, want %v", a, gotVelocity[a], velocity[a])
		}
	}
}

func TestCalcDensityVelocityFEq_MatchesClosedForm(t *testing.T) {
	// GIVEN the ramp fixture f[i] = (i+1)/10
	f := rampDistribution()

	// WHEN moments and equilibrium are computed in one pass
	density, velocity, fEq := CalcDensityVelocityFEq(&f)

	// THEN they match an independent closed-form evaluation to 1e-10
	wantDensity := 0.0
	for i := 0; i < NumVectors; i++ {
		wantDensity += f[i]
	}
	var momentum Vector
	for i := 0; i < NumVectors; i++ {
		ex, ey, ez := Direction(i).Velocity()
		momentum[0] += f[i] * float64(ex)
		momentum[1] += f[i] * float64(ey)
		momentum[2] += f[i] * float64(ez)
	}
	wantVelocity := Vector{momentum[0] / wantDensity, momentum[1] / wantDensity, momentum[2] / wantDensity}

	assert.InDelta(t, wantDensity, density, 1e-10)
	for a := 0; a < 3; a++ {
		assert.InDelta(t, wantVelocity[a], velocity[a], 1e-10)
	}

	uSq := wantVelocity[0]*wantVelocity[0] + wantVelocity[1]*wantVelocity[1] + wantVelocity[2]*wantVelocity[2]
	for i := 0; i < NumVectors; i++ {
		ex, ey, ez := Direction(i).Velocity()
		eu := wantVelocity[0]*float64(ex) + wantVelocity[1]*float64(ey) + wantVelocity[2]*float64(ez)
		want := Direction(i).Weight() * wantDensity * (1.0 + 3.0*eu + 4.5*eu*eu - 1.5*uSq)
		assert.InDeltaf(t, want, fEq[i], 1e-10, "fEq[%d]", i)
	}
}
