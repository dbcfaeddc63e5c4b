package lb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtrema_TracksDensityMinMax(t *testing.T) {
	// GIVEN observations with densities {1.0, 2.5, 0.3}
	ex := NewExtrema()
	for _, density := range []float64{1.0, 2.5, 0.3} {
		ex.Observe(density, Vector{}, 0)
	}

	// THEN the reported extrema are exactly (0.3, 2.5)
	assert.Equal(t, 0.3, ex.DensityMin)
	assert.Equal(t, 2.5, ex.DensityMax)
}

func TestExtrema_ResetRestoresSentinelState(t *testing.T) {
	// GIVEN a tracker that has observed sites
	ex := NewExtrema()
	ex.Observe(1.5, Vector{0.1, -0.2, 0.3}, 0.7)

	// WHEN it is reset
	ex.Reset()

	// THEN its state matches a freshly constructed tracker
	assert.Equal(t, NewExtrema(), ex)
	assert.True(t, math.IsInf(ex.DensityMin, 1))
	assert.True(t, math.IsInf(ex.DensityMax, -1))
}

func TestExtrema_TracksVelocityComponentsIndependently(t *testing.T) {
	ex := NewExtrema()
	ex.Observe(1.0, Vector{0.1, -0.5, 0.2}, 0)
	ex.Observe(1.0, Vector{-0.3, 0.4, 0.2}, 0)

	assert.Equal(t, Vector{-0.3, -0.5, 0.2}, ex.VelocityMin)
	assert.Equal(t, Vector{0.1, 0.4, 0.2}, ex.VelocityMax)
}

func TestExtrema_MergeCombinesWorkerTrackers(t *testing.T) {
	// GIVEN two per-worker trackers over disjoint site ranges
	a := NewExtrema()
	a.Observe(1.0, Vector{0.1, 0, 0}, 0.2)
	b := NewExtrema()
	b.Observe(2.5, Vector{-0.2, 0, 0}, 0.9)

	// WHEN one is merged into the other
	a.Merge(b)

	// THEN the result matches observing all sites in one tracker
	want := NewExtrema()
	want.Observe(1.0, Vector{0.1, 0, 0}, 0.2)
	want.Observe(2.5, Vector{-0.2, 0, 0}, 0.9)
	assert.Equal(t, want, a)
}

func TestExtrema_MergeWithFreshTrackerIsIdentity(t *testing.T) {
	a := NewExtrema()
	a.Observe(1.2, Vector{0.1, 0.2, 0.3}, 0.5)
	before := *a

	a.Merge(NewExtrema())

	assert.Equal(t, &before, a)
}

func TestVonMisesStress_EquilibriumIsZero(t *testing.T) {
	// GIVEN a site at equilibrium, f_neq = 0
	var fNeq Distribution
	assert.Equal(t, 0.0, VonMisesStress(&fNeq, 0.7))
}

func TestVonMisesStress_PureShearMatchesClosedForm(t *testing.T) {
	// GIVEN non-equilibrium mass only on the (1,1,1) diagonal and its
	// inverse, producing equal off-diagonal tensor entries
	var fNeq Distribution
	fNeq[7] = 0.01  // (1,1,1)
	fNeq[8] = 0.01  // (-1,-1,-1)

	// Pi_ab = 0.02 for every a,b; diagonal differences vanish, shear
	// terms survive: sqrt(3 * 3 * 0.02^2)
	want := 0.7 * math.Sqrt(3.0*3.0*0.02*0.02)
	assert.InDelta(t, want, VonMisesStress(&fNeq, 0.7), 1e-14)
}

func TestWallShearStress_NormalTractionOnlyIsZero(t *testing.T) {
	// GIVEN non-equilibrium mass along x only (Pi_xx is the sole nonzero
	// entry) and a wall normal along x
	var fNeq Distribution
	fNeq[1] = 0.02 // (1,0,0)
	fNeq[2] = 0.02 // (-1,0,0)

	// THEN the traction is purely normal: no shear
	got := WallShearStress(&fNeq, Vector{1, 0, 0}, 0.7)
	assert.InDelta(t, 0.0, got, 1e-14)
}

func TestWallShearStress_TangentialTractionMatchesClosedForm(t *testing.T) {
	// GIVEN the pure-shear tensor from the body diagonals and a wall
	// normal along x
	var fNeq Distribution
	fNeq[7] = 0.01
	fNeq[8] = 0.01

	// Pi_ab = 0.02 everywhere; traction (Pi.n) = (0.02, 0.02, 0.02),
	// normal component 0.02, tangential magnitude sqrt(3*0.02^2 - 0.02^2)
	want := 0.7 * math.Sqrt(3.0*0.02*0.02-0.02*0.02)
	got := WallShearStress(&fNeq, Vector{1, 0, 0}, 0.7)
	assert.InDelta(t, want, got, 1e-14)
}

func TestSiteStress_PicksWallMeasureWhenNormalKnown(t *testing.T) {
	// GIVEN two stores differing only in wall-normal knowledge
	withNormal := selfGeometry()
	withNormal.Sites[0].HasWallNormal = true
	withNormal.Sites[0].WallNormal = Vector{1, 0, 0}
	sWith := mustStore(t, withNormal)
	sWithout := mustStore(t, selfGeometry())

	var fNeq Distribution
	fNeq[7] = 0.01
	fNeq[8] = 0.01

	// THEN the walled site reports shear stress, the bulk site von Mises
	assert.InDelta(t, WallShearStress(&fNeq, Vector{1, 0, 0}, 0.7), SiteStress(sWith, 0, &fNeq, 0.7), 1e-15)
	assert.InDelta(t, VonMisesStress(&fNeq, 0.7), SiteStress(sWithout, 0, &fNeq, 0.7), 1e-15)
}
