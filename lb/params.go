package lb

// ViscosityModel maps a local shear rate and density to a kinematic
// viscosity. Implementations live in lb/rheology and register themselves via
// NewViscosityModelFunc.
type ViscosityModel interface {
	// ViscosityForShearRate returns the kinematic viscosity (m^2/s) for the
	// given shear rate (s^-1) and density.
	ViscosityForShearRate(shearRate, density float64) float64
}

// NewViscosityModelFunc is set by lb/rheology's init(). It maps a model name
// ("newtonian", "casson") to a ViscosityModel. Nil until that package is
// imported.
var NewViscosityModelFunc func(name string) (ViscosityModel, error)

// Parameters holds the per-step relaxation constants shared by every bulk
// and boundary computation. The stepper treats it as read-only during a
// pass; Retune may replace the derived values between passes when a
// rheology model recomputes the viscosity.
type Parameters struct {
	TimeStep  float64 // seconds per lattice step
	VoxelSize float64 // metres per lattice spacing
	Viscosity float64 // kinematic viscosity (m^2/s)

	Tau         float64 // BGK relaxation time, in lattice time units
	Omega       float64 // relaxation parameter, -1/Tau
	StressScale float64 // prefactor mapping f_neq moments to stress, (1 - 1/(2*Tau))
}

// NewParameters derives the relaxation constants from physical viscosity,
// time step and voxel size. With lattice speed of sound c_s^2 = 1/3:
//
//	tau = 1/2 + 3 * nu * dt / dx^2
func NewParameters(timeStep, voxelSize, viscosity float64) *Parameters {
	p := &Parameters{
		TimeStep:  timeStep,
		VoxelSize: voxelSize,
		Viscosity: viscosity,
	}
	p.derive()
	return p
}

func (p *Parameters) derive() {
	p.Tau = 0.5 + 3.0*p.Viscosity*p.TimeStep/(p.VoxelSize*p.VoxelSize)
	p.Omega = -1.0 / p.Tau
	p.StressScale = 1.0 - 1.0/(2.0*p.Tau)
}

// Retune recomputes the relaxation constants from a viscosity model
// evaluated at the given shear rate and density. Called between passes,
// never during one.
func (p *Parameters) Retune(model ViscosityModel, shearRate, density float64) {
	p.Viscosity = model.ViscosityForShearRate(shearRate, density)
	p.derive()
}
