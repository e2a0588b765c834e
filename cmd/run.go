package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/KaramelBytes/onomast-cli/internal/analysis"
	"github.com/KaramelBytes/onomast-cli/internal/names"
	"github.com/KaramelBytes/onomast-cli/internal/relatedness"
	"github.com/KaramelBytes/onomast-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	runPopulation string
	runReference  string
	runN          int
	runM          int
	runK          int
	runDistinct   bool
	runSeed       uint64
	runWorkers    int
	runOutDir     string
	runNoPlots    bool
	runFormats    []string
	runDPI        int
	runStats      []string
	runOutput     string
	runDelimiter  string
	runSheet      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample the population and compare all statistics with the reference set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *currentConfig()
		f := cmd.Flags()
		if f.Changed("population") {
			c.PopulationFile = runPopulation
		}
		if f.Changed("reference") {
			c.ReferenceFile = runReference
		}
		if f.Changed("population-size") {
			c.PopulationSize = runN
		}
		if f.Changed("reference-size") {
			c.ReferenceSize = runM
		}
		if f.Changed("samples") {
			c.Samples = runK
		}
		if f.Changed("distinct") {
			c.EnforceDistinct = runDistinct
		}
		if f.Changed("seed") {
			c.Seed = runSeed
		}
		if f.Changed("workers") {
			c.Workers = runWorkers
		}
		if f.Changed("out-dir") {
			c.OutputDir = runOutDir
		}
		if f.Changed("no-plots") {
			c.Plots = !runNoPlots
		}
		if f.Changed("format") {
			c.Formats = runFormats
		}
		if f.Changed("dpi") {
			c.DPI = runDPI
		}
		if f.Changed("delimiter") {
			c.Delimiter = runDelimiter
		}
		if f.Changed("sheet") {
			c.Sheet = runSheet
		}
		if err := c.Validate(); err != nil {
			return err
		}
		delim, err := parseDelimiter(c.Delimiter)
		if err != nil {
			return err
		}
		selected, err := relatedness.Select(runStats)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		rep, err := analysis.Run(ctx, analysis.RunOptions{
			PopulationFile:  c.PopulationFile,
			ReferenceFile:   c.ReferenceFile,
			PopulationSize:  c.PopulationSize,
			ReferenceSize:   c.ReferenceSize,
			Samples:         c.Samples,
			EnforceDistinct: c.EnforceDistinct,
			Seed:            c.Seed,
			Workers:         c.Workers,
			ProgressEvery:   c.ProgressEvery,
			Statistics:      selected,
			ReferenceLabel:  c.ReferenceLabel,
			PopulationLabel: c.PopulationLabel,
			Load:            names.Options{Delimiter: delim, Sheet: c.Sheet},
			Plots:           c.Plots,
			OutputDir:       c.OutputDir,
			Formats:         c.Formats,
			DPI:             c.DPI,
		}, cmd.OutOrStdout(), logger)
		if err != nil {
			if ctx.Err() == context.Canceled {
				return fmt.Errorf("interrupted: %w", err)
			}
			return err
		}

		if runOutput != "" {
			if err := utils.SafeWriteFile(runOutput, []byte(rep.Text())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", runOutput)
		}
		return nil
	},
}

// parseDelimiter maps the delimiter setting to a rune; empty means "by extension".
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ','|';'|'tab'|'|')", s)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runPopulation, "population", "", "population pair list (seals and bullae)")
	runCmd.Flags().StringVar(&runReference, "reference", "", "reference pair list (stamped handles)")
	runCmd.Flags().IntVarP(&runN, "population-size", "n", 0, "expected population size (0 = file row count)")
	runCmd.Flags().IntVarP(&runM, "reference-size", "m", 0, "expected reference size and subset size (0 = file row count)")
	runCmd.Flags().IntVarP(&runK, "samples", "k", 0, "number of random subsets to draw")
	runCmd.Flags().BoolVar(&runDistinct, "distinct", false, "reject subsets drawn before (slower)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "random seed (0 = random)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel evaluation workers (0 = all CPUs)")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "", "directory for histogram images")
	runCmd.Flags().BoolVar(&runNoPlots, "no-plots", false, "skip histogram images")
	runCmd.Flags().StringSliceVar(&runFormats, "format", nil, "image formats: jpg, tif, png (repeatable)")
	runCmd.Flags().IntVar(&runDPI, "dpi", 0, "image resolution")
	runCmd.Flags().StringSliceVar(&runStats, "stat", nil, "statistics to evaluate: "+strings.Join(relatedness.Keys(), ", ")+" (default all)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "optional path to write the text report")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "input delimiter: ',' | ';' | 'tab' | '|' (default by extension)")
	runCmd.Flags().StringVar(&runSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
}
