// Package rheology provides the viscosity models used to retune the
// relaxation parameter between passes on long-running simulations.
package rheology

import (
	"fmt"
	"math"

	"github.com/latticeflow/latticeflow/lb"
)

// Casson model constants.
const (
	cassonK0 = 0.1937 // Pa^{1/2}
	cassonK1 = 0.055  // (Pa*s)^{1/2}

	// CassonMaxViscosity caps the dynamic viscosity as the shear rate
	// approaches zero, where the raw model diverges.
	CassonMaxViscosity = 0.16 // Pa*s
)

// Newtonian is a constant-viscosity model: the shear rate is ignored.
type Newtonian struct {
	Nu float64 // kinematic viscosity (m^2/s)
}

func (n Newtonian) ViscosityForShearRate(shearRate, density float64) float64 {
	return n.Nu
}

// Casson computes a shear-thinning kinematic viscosity:
//
//	eta = (K0 + K1*sqrt(shearRate))^2 / shearRate
//	nu  = eta / density
//
// capped at CassonMaxViscosity before dividing by density.
type Casson struct{}

func (Casson) ViscosityForShearRate(shearRate, density float64) float64 {
	eta := CassonMaxViscosity
	if shearRate > 0 {
		k := cassonK0 + cassonK1*math.Sqrt(shearRate)
		eta = math.Min(CassonMaxViscosity, k*k/shearRate)
	}
	return eta / density
}

// DefaultNewtonianViscosity is the kinematic viscosity of blood plasma,
// used when a spec names the newtonian model without a value.
const DefaultNewtonianViscosity = 4e-6 // m^2/s

// New maps a model name to a ViscosityModel.
func New(name string) (lb.ViscosityModel, error) {
	switch name {
	case "", "newtonian":
		return Newtonian{Nu: DefaultNewtonianViscosity}, nil
	case "casson":
		return Casson{}, nil
	default:
		return nil, fmt.Errorf("unknown rheology model %q", name)
	}
}
