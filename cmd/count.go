package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/onomast-cli/internal/names"
	"github.com/KaramelBytes/onomast-cli/internal/relatedness"
	"github.com/spf13/cobra"
)

var (
	countStats     []string
	countDelimiter string
	countSheet     string
	countQuiet     bool
)

var countCmd = &cobra.Command{
	Use:   "count <files...>",
	Short: "Compute every statistic on whole pair lists, without sampling",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		delim, err := parseDelimiter(countDelimiter)
		if err != nil {
			return err
		}
		selected, err := relatedness.Select(countStats)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !countQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			set, err := names.Load(path, names.Options{Delimiter: delim, Sheet: countSheet})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%d records)\n", path, len(set))
			for _, st := range selected {
				fmt.Fprintf(out, "  %s: %d\n", st.Title, st.Count(set))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().StringSliceVar(&countStats, "stat", nil, "statistics to compute (default all)")
	countCmd.Flags().StringVar(&countDelimiter, "delimiter", "", "input delimiter: ',' | ';' | 'tab' | '|' (default by extension)")
	countCmd.Flags().StringVar(&countSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	countCmd.Flags().BoolVarP(&countQuiet, "quiet", "q", false, "suppress progress lines")
}
