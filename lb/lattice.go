package lb

import (
	"gonum.org/v1/gonum/floats"
)

// Direction indexes one of the discrete lattice velocities of the D3Q15 set.
type Direction int

// NumVectors is the size of the D3Q15 velocity set, including the rest vector.
const NumVectors = 15

// Rest is the zero-velocity direction. It streams a site onto itself.
const Rest Direction = 0

// Distribution holds one population value per lattice direction.
type Distribution [NumVectors]float64

// Vector is a 3-D quantity indexed x, y, z.
type Vector [3]float64

// The D3Q15 velocity set. Direction 0 is the rest vector; 1-6 are the unit
// axis vectors; 7-14 the body diagonals. Non-rest directions are laid out in
// inverse-adjacent pairs so Inverse stays a pure index computation.
var directions = [NumVectors][3]int{
	{0, 0, 0},
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{1, 1, 1}, {-1, -1, -1},
	{1, 1, -1}, {-1, -1, 1},
	{1, -1, 1}, {-1, 1, -1},
	{1, -1, -1}, {-1, 1, 1},
}

// Quadrature weights of the D3Q15 equilibrium expansion.
var weights = [NumVectors]float64{
	2.0 / 9.0,
	1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0,
	1.0 / 72.0, 1.0 / 72.0, 1.0 / 72.0, 1.0 / 72.0,
	1.0 / 72.0, 1.0 / 72.0, 1.0 / 72.0, 1.0 / 72.0,
}

// Velocity returns the integer lattice vector of direction d.
func (d Direction) Velocity() (int, int, int) {
	v := directions[d]
	return v[0], v[1], v[2]
}

// Weight returns the quadrature weight of direction d.
func (d Direction) Weight() float64 {
	return weights[d]
}

// Inverse returns the direction whose velocity is the negation of d's.
// The rest direction is its own inverse.
func (d Direction) Inverse() Direction {
	if d == Rest {
		return Rest
	}
	if d%2 == 1 {
		return d + 1
	}
	return d - 1
}

// CalcDensityVelocityFEq computes the zeroth moment (density), first moment
// over density (velocity), and the second-order equilibrium distribution of
// f in one pass. It is pure and performs no stability checks: a zero or
// negative density is the caller's problem, flagged downstream from the
// extrema tracker.
func CalcDensityVelocityFEq(f *Distribution) (density float64, velocity Vector, fEq Distribution) {
	density = floats.Sum(f[:])

	var momentum Vector
	for i := 1; i < NumVectors; i++ {
		e := directions[i]
		momentum[0] += f[i] * float64(e[0])
		momentum[1] += f[i] * float64(e[1])
		momentum[2] += f[i] * float64(e[2])
	}
	velocity[0] = momentum[0] / density
	velocity[1] = momentum[1] / density
	velocity[2] = momentum[2] / density

	fEq = CalcFEq(density, velocity)
	return density, velocity, fEq
}

// CalcFEq computes the second-order lattice-Boltzmann equilibrium
// distribution for the given density and velocity:
//
//	fEq_i = w_i * rho * (1 + 3(e_i.u) + 9/2(e_i.u)^2 - 3/2 u.u)
func CalcFEq(density float64, velocity Vector) Distribution {
	var fEq Distribution
	uSq := velocity[0]*velocity[0] + velocity[1]*velocity[1] + velocity[2]*velocity[2]
	for i := 0; i < NumVectors; i++ {
		e := directions[i]
		eu := velocity[0]*float64(e[0]) + velocity[1]*float64(e[1]) + velocity[2]*float64(e[2])
		fEq[i] = weights[i] * density * (1.0 + 3.0*eu + 4.5*eu*eu - 1.5*uSq)
	}
	return fEq
}

// CalcDensity computes only the zeroth moment of f.
func CalcDensity(f *Distribution) float64 {
	return floats.Sum(f[:])
}

// CalcVelocity computes the first moment of f divided by the given density.
func CalcVelocity(f *Distribution, density float64) Vector {
	var v Vector
	for i := 1; i < NumVectors; i++ {
		e := directions[i]
		v[0] += f[i] * float64(e[0])
		v[1] += f[i] * float64(e[1])
		v[2] += f[i] * float64(e[2])
	}
	v[0] /= density
	v[1] /= density
	v[2] /= density
	return v
}
