package analysis

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyDistribution is returned when there is nothing to summarize.
var ErrEmptyDistribution = errors.New("empty distribution")

// Summary describes the sampled distribution of one statistic and how the
// reference value sits in it.
type Summary struct {
	Count  int
	Min    int
	Max    int
	Mode   int
	Median float64
	Mean   float64
	// StdDev is the sample standard deviation (n-1 denominator); 0 for a single value.
	StdDev float64
	P95    float64

	Target int
	// TailCount is the number of values >= Target.
	TailCount       int
	TailProbability float64
}

// Summarize computes descriptive statistics of values and the one-sided tail
// probability of observing target or more.
func Summarize(values []int, target int) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyDistribution
	}
	data := stats.LoadRawData(values)
	lo, err := stats.Min(data)
	if err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	mean, std := stat.MeanStdDev(data, nil)
	if len(values) == 1 {
		std = 0
	}
	mode, _ := Mode(values)
	p95, _ := Percentile(values, 95)
	tail := countAtLeast(values, target)

	return Summary{
		Count:           len(values),
		Min:             int(lo),
		Max:             int(hi),
		Mode:            mode,
		Median:          median,
		Mean:            mean,
		StdDev:          std,
		P95:             p95,
		Target:          target,
		TailCount:       tail,
		TailProbability: float64(tail) / float64(len(values)),
	}, nil
}

// TailProbability returns the fraction of values >= target.
func TailProbability(values []int, target int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDistribution
	}
	return float64(countAtLeast(values, target)) / float64(len(values)), nil
}

func countAtLeast(values []int, target int) int {
	n := 0
	for _, v := range values {
		if v >= target {
			n++
		}
	}
	return n
}

// Mode returns the most frequent value. Ties go to the value that appears
// first in values.
func Mode(values []int) (int, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDistribution
	}
	freq := make(map[int]int)
	best := 0
	for _, v := range values {
		freq[v]++
		best = max(best, freq[v])
	}
	for _, v := range values {
		if freq[v] == best {
			return v, nil
		}
	}
	return values[0], nil
}

// Percentile returns the p-th percentile (0..100) by linear interpolation
// between the two closest ranks of the sorted values.
func Percentile(values []int, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDistribution
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, fmt.Errorf("percentile %v out of range [0, 100]", p)
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	h := float64(len(sorted)-1) * p / 100
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1]), nil
	}
	lo, hi := float64(sorted[i]), float64(sorted[i+1])
	return lo + (h-float64(i))*(hi-lo), nil
}
