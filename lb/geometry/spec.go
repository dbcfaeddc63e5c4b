// Package geometry builds validated lb.Geometry partitions from YAML specs
// or programmatic builders. All setup-time geometry contracts (wall-fraction
// clamping, classification consistency, boundary ids) are enforced here so
// the core never re-validates per step.
package geometry

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/latticeflow/latticeflow/lb"
)

// Spec is the top-level geometry configuration, loaded from YAML via Load.
// Cells are unit lattice voxels; blocks and planes use inclusive lattice
// coordinates.
type Spec struct {
	Dims      [3]int  `yaml:"dims"`
	TimeStep  float64 `yaml:"time_step"`  // seconds
	VoxelSize float64 `yaml:"voxel_size"` // metres
	Viscosity float64 `yaml:"viscosity"`  // kinematic, m^2/s
	Rheology  string  `yaml:"rheology,omitempty"`
	Solids    []Block `yaml:"solids,omitempty"`
	Inlets    []Plane `yaml:"inlets,omitempty"`
	Outlets   []Plane `yaml:"outlets,omitempty"`
}

// Block is an inclusive axis-aligned box of solid cells.
type Block struct {
	Min [3]int `yaml:"min"`
	Max [3]int `yaml:"max"`
}

// Plane is an open inlet or outlet face of the domain box.
type Plane struct {
	Axis     string  `yaml:"axis"`     // "x", "y" or "z"
	Position int     `yaml:"position"` // 0 or dims[axis]-1
	Density  float64 `yaml:"density"`
}

// Load reads and validates a geometry spec from a YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading geometry spec: %w", err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing geometry spec %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry spec %s: %w", path, err)
	}
	return &spec, nil
}

func axisIndex(axis string) (int, error) {
	switch axis {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", axis)
	}
}

// Validate checks the spec's internal consistency. Build assumes a validated
// spec.
func (s *Spec) Validate() error {
	for a := 0; a < 3; a++ {
		if s.Dims[a] < 1 {
			return fmt.Errorf("dims[%d] = %d, must be >= 1", a, s.Dims[a])
		}
	}
	if s.TimeStep <= 0 {
		return fmt.Errorf("time_step must be positive, got %g", s.TimeStep)
	}
	if s.VoxelSize <= 0 {
		return fmt.Errorf("voxel_size must be positive, got %g", s.VoxelSize)
	}
	if s.Viscosity <= 0 {
		return fmt.Errorf("viscosity must be positive, got %g", s.Viscosity)
	}
	for i, b := range s.Solids {
		for a := 0; a < 3; a++ {
			if b.Min[a] > b.Max[a] {
				return fmt.Errorf("solids[%d]: min > max on axis %d", i, a)
			}
		}
	}
	for i, p := range s.Inlets {
		if err := s.validatePlane(p); err != nil {
			return fmt.Errorf("inlets[%d]: %w", i, err)
		}
	}
	for i, p := range s.Outlets {
		if err := s.validatePlane(p); err != nil {
			return fmt.Errorf("outlets[%d]: %w", i, err)
		}
	}
	if tau := 0.5 + 3.0*s.Viscosity*s.TimeStep/(s.VoxelSize*s.VoxelSize); tau > 5.0 || tau < 0.51 {
		logrus.Warnf("relaxation time %g is far from 1; expect poor accuracy", tau)
	}
	return nil
}

func (s *Spec) validatePlane(p Plane) error {
	a, err := axisIndex(p.Axis)
	if err != nil {
		return err
	}
	if p.Position != 0 && p.Position != s.Dims[a]-1 {
		return fmt.Errorf("position %d is not a boundary of axis %s (dim %d)", p.Position, p.Axis, s.Dims[a])
	}
	if p.Density <= 0 {
		return fmt.Errorf("density must be positive, got %g", p.Density)
	}
	return nil
}

// Parameters derives the simulation parameters embedded in the spec.
func (s *Spec) Parameters() *lb.Parameters {
	return lb.NewParameters(s.TimeStep, s.VoxelSize, s.Viscosity)
}

// Duct is the programmatic builder for a rectangular duct: solid walls on
// the y and z faces, an inlet plane at x=0 and an outlet plane at x=nx-1.
func Duct(nx, ny, nz int, inletDensity, outletDensity float64) *Spec {
	return &Spec{
		Dims:      [3]int{nx, ny, nz},
		TimeStep:  1e-3,
		VoxelSize: 1e-4,
		Viscosity: 4e-6,
		Inlets:    []Plane{{Axis: "x", Position: 0, Density: inletDensity}},
		Outlets:   []Plane{{Axis: "x", Position: nx - 1, Density: outletDensity}},
	}
}
