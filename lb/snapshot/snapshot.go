// Package snapshot extracts the macroscopic fields (density, velocity,
// stress) from a site store for persistence and downstream visualization.
// The core never touches files; this package does.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/latticeflow/latticeflow/lb"
)

// Record holds one site's diagnostic scalars for one step.
type Record struct {
	Site     int
	Density  float64
	Velocity lb.Vector
	Stress   float64
}

// Collect computes a record per site from the store's current buffer.
func Collect(s *lb.SiteStore, p *lb.Parameters) []Record {
	records := make([]Record, s.NumSites())
	for i := 0; i < s.NumSites(); i++ {
		f := s.Current(i)
		density, velocity, fEq := lb.CalcDensityVelocityFEq(f)
		var fNeq lb.Distribution
		for d := 0; d < lb.NumVectors; d++ {
			fNeq[d] = f[d] - fEq[d]
		}
		records[i] = Record{
			Site:     i,
			Density:  density,
			Velocity: velocity,
			Stress:   lb.SiteStress(s, i, &fNeq, p.StressScale),
		}
	}
	return records
}

// Summary aggregates a set of records.
type Summary struct {
	Sites         int
	MeanDensity   float64
	StdDevDensity float64
	MeanSpeed     float64
	MaxStress     float64
}

// Summarize computes aggregate statistics over the records. Safe for empty
// input (returns zero-value fields).
func Summarize(records []Record) *Summary {
	summary := &Summary{Sites: len(records)}
	if len(records) == 0 {
		return summary
	}

	densities := make([]float64, len(records))
	speeds := make([]float64, len(records))
	for i, r := range records {
		densities[i] = r.Density
		speeds[i] = speed(r.Velocity)
		if r.Stress > summary.MaxStress {
			summary.MaxStress = r.Stress
		}
	}
	summary.MeanDensity = stat.Mean(densities, nil)
	summary.StdDevDensity = stat.StdDev(densities, nil)
	summary.MeanSpeed = stat.Mean(speeds, nil)
	return summary
}

func speed(v lb.Vector) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// WriteCSV writes the records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"site", "density", "vx", "vy", "vz", "stress"}); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Site),
			formatFloat(r.Density),
			formatFloat(r.Velocity[0]),
			formatFloat(r.Velocity[1]),
			formatFloat(r.Velocity[2]),
			formatFloat(r.Stress),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing snapshot row for site %d: %w", r.Site, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	// Shortest representation that round-trips exactly.
	return strconv.FormatFloat(v, 'g', -1, 64)
}
