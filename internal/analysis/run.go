package analysis

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/onomast-cli/internal/chart"
	"github.com/KaramelBytes/onomast-cli/internal/logging"
	"github.com/KaramelBytes/onomast-cli/internal/names"
	"github.com/KaramelBytes/onomast-cli/internal/relatedness"
	"github.com/KaramelBytes/onomast-cli/internal/sampler"
)

// RunOptions controls a full Monte-Carlo run.
type RunOptions struct {
	PopulationFile string
	ReferenceFile  string
	// PopulationSize (n) and ReferenceSize (m) must match the row counts of
	// their files; 0 takes the row count.
	PopulationSize  int
	ReferenceSize   int
	Samples         int
	EnforceDistinct bool
	// Seed makes the run reproducible; 0 picks a random seed, reported back.
	Seed          uint64
	Workers       int
	ProgressEvery int
	// Statistics to evaluate; empty means all of them.
	Statistics []relatedness.Statistic
	Load       names.Options

	// Labels name the two record sets in the report and figure legends;
	// empty keeps the seal/handle wording.
	ReferenceLabel  string
	PopulationLabel string

	Plots     bool
	OutputDir string
	Formats   []string
	DPI       int
}

// Run loads both record sets, draws the sample subsets once, and compares
// every selected statistic on the same subsets. Each statistic's text is
// written to out as soon as it is computed.
func Run(ctx context.Context, opt RunOptions, out io.Writer, log *logging.Logger) (*Report, error) {
	if log == nil {
		log = logging.Discard()
	}
	reference, err := names.Load(opt.ReferenceFile, opt.Load)
	if err != nil {
		return nil, fmt.Errorf("load reference set: %w", err)
	}
	population, err := names.Load(opt.PopulationFile, opt.Load)
	if err != nil {
		return nil, fmt.Errorf("load population: %w", err)
	}
	n, err := resolveSize("population", opt.PopulationSize, len(population))
	if err != nil {
		return nil, err
	}
	m, err := resolveSize("reference set", opt.ReferenceSize, len(reference))
	if err != nil {
		return nil, err
	}

	seed := opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	selected := opt.Statistics
	if len(selected) == 0 {
		selected = relatedness.All
	}
	rep := &Report{
		RunID:           uuid.NewString(),
		PopulationFile:  opt.PopulationFile,
		ReferenceFile:   opt.ReferenceFile,
		N:               n,
		M:               m,
		K:               opt.Samples,
		EnforceDistinct: opt.EnforceDistinct,
		Seed:            seed,
		ReferenceLabel:  opt.ReferenceLabel,
		PopulationLabel: opt.PopulationLabel,
	}

	log.Infof("Generating %s subsets....", thousands(opt.Samples))
	started := time.Now()
	samples, err := sampler.Draw(ctx, n, m, opt.Samples, opt.EnforceDistinct,
		sampler.WithSeed(seed),
		sampler.WithProgress(opt.ProgressEvery, func(done, total int) {
			log.Infof("\t%d/%dk", done/1000, total/1000)
		}),
		sampler.WithRejectHook(func(s sampler.Subset) {
			log.Debugf("Already chosen: %v", s)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("draw subsets: %w", err)
	}
	log.Infof("...done in %s (run %s)", time.Since(started).Round(time.Millisecond), rep.RunID)

	if _, err := io.WriteString(out, rep.Header()+"\n"); err != nil {
		return nil, err
	}
	for _, st := range selected {
		started := time.Now()
		res, err := Evaluate(ctx, st, reference, population, samples, opt.Workers)
		if err != nil {
			return nil, err
		}
		rep.Results = append(rep.Results, res)
		log.Debugf("%s evaluated in %s", st.Key, time.Since(started).Round(time.Millisecond))
		if _, err := io.WriteString(out, res.Text(rep.ReferenceLabel, rep.PopulationLabel)+"\n"); err != nil {
			return nil, err
		}
		if !opt.Plots {
			continue
		}
		paths, err := rep.Histogram(res, opt.Formats, opt.DPI).Save(opt.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", st.Key, err)
		}
		for _, p := range paths {
			log.Infof("✓ Wrote %s", p)
		}
		rep.Images = append(rep.Images, paths...)
	}
	return rep, nil
}

// Histogram describes the figure for one result of this run.
func (r *Report) Histogram(res *Result, formats []string, dpi int) chart.Histogram {
	k := len(res.Values)
	return chart.Histogram{
		Title:          fmt.Sprintf("%s random subsets of %d seals among %d seals", thousands(k), r.M, r.N),
		XLabel:         res.Statistic.Title,
		Values:         res.Values,
		Target:         res.Target,
		TailLabel:      TailPercent(res.Summary.TailProbability) + "%",
		Mode:           res.Summary.Mode,
		SampleLabel:    r.PopulationLabel,
		ReferenceLabel: r.ReferenceLabel,
		Formats:        formats,
		DPI:            dpi,
	}
}

func resolveSize(what string, declared, actual int) (int, error) {
	if declared == 0 {
		return actual, nil
	}
	if declared != actual {
		return 0, fmt.Errorf("%s size is %d but the file holds %d records", what, declared, actual)
	}
	return declared, nil
}

// thousands renders k as "<k/1000>K", or the plain number below one thousand.
func thousands(k int) string {
	if k < 1000 {
		return fmt.Sprint(k)
	}
	return fmt.Sprintf("%dK", k/1000)
}
