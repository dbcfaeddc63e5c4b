package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/latticeflow/latticeflow/lb"
	"github.com/latticeflow/latticeflow/lb/geometry"
	"github.com/latticeflow/latticeflow/lb/rheology"
	"github.com/latticeflow/latticeflow/lb/snapshot"
)

var (
	// CLI flags for the simulation run
	steps         int     // Number of collision-streaming steps
	logLevel      string  // Log verbosity level
	workers       int     // Parallel workers per pass (0 = GOMAXPROCS)
	geometryFile  string  // YAML geometry spec path (empty = built-in duct)
	snapshotFile  string  // CSV field snapshot output path (empty = none)
	reportEvery   int     // Steps between extrema log lines
	rheologyModel string  // Viscosity model name ("newtonian", "casson")
	retuneEvery   int     // Steps between viscosity retunes (0 = never)

	// CLI flags for the built-in duct geometry
	ductNx        int     // Duct length in lattice sites
	ductNy        int     // Duct height
	ductNz        int     // Duct depth
	inletDensity  float64 // Fixed density at the inlet plane
	outletDensity float64 // Fixed density at the outlet plane
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "latticeflow",
	Short: "Lattice-Boltzmann flow solver on the D3Q15 velocity set",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lattice-Boltzmann simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		var spec *geometry.Spec
		if geometryFile != "" {
			spec, err = geometry.Load(geometryFile)
			if err != nil {
				logrus.Fatalf("unable to load geometry: %v", err)
			}
		} else {
			spec = geometry.Duct(ductNx, ductNy, ductNz, inletDensity, outletDensity)
			if err := spec.Validate(); err != nil {
				logrus.Fatalf("invalid duct parameters: %v", err)
			}
		}

		geo, err := spec.Build()
		if err != nil {
			logrus.Fatalf("unable to build geometry: %v", err)
		}
		store, err := lb.NewSiteStore(geo)
		if err != nil {
			logrus.Fatalf("unable to build site store: %v", err)
		}
		store.InitEquilibrium(1.0, lb.Vector{})

		params := spec.Parameters()
		model, err := rheology.New(rheologyModel)
		if err != nil {
			logrus.Fatalf("unable to select rheology model: %v", err)
		}

		logrus.Infof("Starting simulation: %d sites, %d steps, tau=%g, omega=%g",
			store.NumSites(), steps, params.Tau, params.Omega)

		startTime := time.Now()
		stepper := lb.NewStepper(params, &lb.Loopback{Store: store}, workers)

		var extrema *lb.Extrema
		for step := 1; step <= steps; step++ {
			extrema = stepper.Step(store)
			if reportEvery > 0 && step%reportEvery == 0 {
				logrus.Infof("[step %06d] density [%.6g, %.6g] |v|max [%.3g, %.3g, %.3g] stress max %.3g",
					step, extrema.DensityMin, extrema.DensityMax,
					extrema.VelocityMax[0], extrema.VelocityMax[1], extrema.VelocityMax[2],
					extrema.StressMax)
			}
			if retuneEvery > 0 && step%retuneEvery == 0 {
				// Retune from a shear-rate scale derived from the pass's
				// stress range.
				shearRate := extrema.StressMax / params.Viscosity
				params.Retune(model, shearRate, extrema.DensityMax)
				logrus.Debugf("[step %06d] retuned: nu=%g tau=%g", step, params.Viscosity, params.Tau)
			}
			if extrema.DensityMin <= 0 {
				logrus.Errorf("[step %06d] simulation unstable: density min %g", step, extrema.DensityMin)
				break
			}
		}

		logrus.Infof("Simulation finished in %v", time.Since(startTime))

		if snapshotFile != "" {
			records := snapshot.Collect(store, params)
			summary := snapshot.Summarize(records)
			logrus.Infof("Snapshot: %d sites, mean density %.6g (stddev %.3g), mean speed %.3g",
				summary.Sites, summary.MeanDensity, summary.StdDevDensity, summary.MeanSpeed)

			out, err := os.Create(snapshotFile)
			if err != nil {
				logrus.Fatalf("unable to create snapshot file: %v", err)
			}
			defer out.Close()
			if err := snapshot.WriteCSV(out, records); err != nil {
				logrus.Fatalf("unable to write snapshot: %v", err)
			}
		}
	},
}

func init() {
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of collision-streaming steps")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (trace, debug, info, warn, error)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers per pass (0 = GOMAXPROCS)")
	runCmd.Flags().StringVar(&geometryFile, "geometry", "", "YAML geometry spec (default: built-in duct)")
	runCmd.Flags().StringVar(&snapshotFile, "snapshot", "", "write a CSV field snapshot here at the end")
	runCmd.Flags().IntVar(&reportEvery, "report-every", 100, "steps between extrema log lines (0 = never)")
	runCmd.Flags().StringVar(&rheologyModel, "rheology", "newtonian", "viscosity model (newtonian, casson)")
	runCmd.Flags().IntVar(&retuneEvery, "retune-every", 0, "steps between viscosity retunes (0 = never)")

	runCmd.Flags().IntVar(&ductNx, "nx", 32, "duct length in sites")
	runCmd.Flags().IntVar(&ductNy, "ny", 8, "duct height in sites")
	runCmd.Flags().IntVar(&ductNz, "nz", 8, "duct depth in sites")
	runCmd.Flags().Float64Var(&inletDensity, "inlet-density", 1.001, "fixed inlet density")
	runCmd.Flags().Float64Var(&outletDensity, "outlet-density", 1.0, "fixed outlet density")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
