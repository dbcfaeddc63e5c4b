// register.go wires the rheology constructors into the lb package's
// registration variable (NewViscosityModelFunc). This init() runs when any
// package imports lb/rheology, breaking the import cycle between lb/
// (interface owner) and lb/rheology/ (implementations).
package rheology

import "github.com/latticeflow/latticeflow/lb"

func init() {
	lb.NewViscosityModelFunc = New
}
