// Package lb implements the collision-streaming core of a lattice-Boltzmann
// fluid solver on the D3Q15 velocity set.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - lattice.go: the discrete velocity set, moments and the second-order
//     equilibrium distribution
//   - site.go: the double-buffered site store, site classification, wall
//     fractions and streaming targets
//   - stepper.go: the per-step pass, kernel dispatch and worker split
//
// # Architecture
//
// The update of a site reads only the "current" buffer and writes only the
// "next" buffer, so sites have no intra-step data dependency and the pass
// parallelizes over disjoint contiguous index ranges with no locking.
// Buffers swap once per pass.
//
// Bulk sites relax toward equilibrium with the single-relaxation-time (BGK)
// rule and stream into their neighbors (collision.go). Directions blocked by
// a wall cannot be streamed into; gzs.go reconstructs those populations with
// the Guo-Zheng-Shi interpolated scheme from the per-direction wall-distance
// fraction. Inlet and outlet sites pin the density to their boundary value
// and relax fully to equilibrium. Treatments compose: an inlet site with
// wall fractions gets both.
//
// Sub-packages supply the collaborators the core is injected with:
//   - lb/geometry: YAML geometry specs and programmatic builders producing
//     a validated Geometry
//   - lb/rheology: viscosity models (Newtonian, Casson) registered via
//     NewViscosityModelFunc
//   - lb/snapshot: macroscopic field extraction and CSV export
//
// Cross-partition streaming goes through the Transport capability
// (transport.go); the core never talks to a message-passing layer directly.
// Numerical instability is not detected here: the Extrema tracker
// (extrema.go) reports the field ranges and a monitor above this package
// decides when the run has diverged.
package lb
