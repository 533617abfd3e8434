// Package stats computes exploratory summaries over normalized departures:
// delay distribution, per-hour buckets and a linear delay-versus-time fit.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/skysift/skysift/core/model"
)

// HourBucket aggregates departures sharing an hour of day.
type HourBucket struct {
	Hour      int
	Count     int
	MeanDelay float64
}

// Trend is a least-squares fit of delay against minutes of day.
type Trend struct {
	Alpha    float64 // intercept, minutes of delay at midnight
	Beta     float64 // slope, delay minutes per minute of day
	RSquared float64
}

// Summary describes the delay distribution of a batch.
type Summary struct {
	Count       int
	MeanDelay   float64
	StdDevDelay float64
	P50         float64
	P90         float64
	P99         float64
	Hours       []HourBucket
	Trend       Trend
}

// Summarize computes a Summary. An empty input yields the zero Summary; the
// standard deviation and trend require at least two departures.
func Summarize(deps []model.NormalizedDeparture) Summary {
	if len(deps) == 0 {
		return Summary{}
	}

	delays := make([]float64, len(deps))
	minutes := make([]float64, len(deps))
	counts := make([]int, 24)
	sums := make([]float64, 24)
	for i, d := range deps {
		delays[i] = d.DelayMin
		minutes[i] = float64(d.TimeOfDay.MinutesOfDay())
		counts[d.TimeOfDay.Hour]++
		sums[d.TimeOfDay.Hour] += d.DelayMin
	}

	s := Summary{
		Count:     len(deps),
		MeanDelay: stat.Mean(delays, nil),
	}

	sorted := append([]float64(nil), delays...)
	sort.Float64s(sorted)
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)

	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		s.Hours = append(s.Hours, HourBucket{
			Hour:      hour,
			Count:     counts[hour],
			MeanDelay: sums[hour] / float64(counts[hour]),
		})
	}

	if len(deps) >= 2 {
		s.StdDevDelay = stat.StdDev(delays, nil)
		alpha, beta := stat.LinearRegression(minutes, delays, nil, false)
		s.Trend = Trend{
			Alpha:    alpha,
			Beta:     beta,
			RSquared: stat.RSquared(minutes, delays, nil, alpha, beta),
		}
	}
	return s
}
