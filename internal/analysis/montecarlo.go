package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/onomast-cli/internal/names"
	"github.com/KaramelBytes/onomast-cli/internal/relatedness"
	"github.com/KaramelBytes/onomast-cli/internal/sampler"
)

// Result is the comparison of one statistic between the reference set and the
// sampled subsets of the population.
type Result struct {
	Statistic relatedness.Statistic
	Target    int
	// Values holds one entry per sampled subset, in sample order.
	Values  []int
	Summary Summary
}

// Evaluate applies st to the reference set and to every sampled subset of the
// population. Subsets are split across workers goroutines (GOMAXPROCS when
// workers <= 0); the returned values keep sample order, so the result does not
// depend on the worker count.
func Evaluate(ctx context.Context, st relatedness.Statistic, reference, population names.Set, samples sampler.SampleSet, workers int) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", st.Key, ErrEmptyDistribution)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(samples))

	values := make([]int, len(samples))
	chunk := (len(samples) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(samples); start += chunk {
		end := min(start+chunk, len(samples))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				subset, err := population.Subset(samples[i])
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				values[i] = st.Count(subset)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", st.Key, err)
	}

	target := st.Count(reference)
	sum, err := Summarize(values, target)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", st.Key, err)
	}
	return &Result{Statistic: st, Target: target, Values: values, Summary: sum}, nil
}
