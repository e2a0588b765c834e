package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/onomast-cli/internal/config"
	"github.com/KaramelBytes/onomast-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = logging.FromEnv()
)

var rootCmd = &cobra.Command{
	Use:   "onomast",
	Short: "Onomast: Monte-Carlo tests of name coincidences in pair inscriptions",
	Long: `Onomast compares name coincidences (repeated names, homonyms, potential siblings,
potential genealogical relations) in a small reference set of name pairs against
their distribution over many random equal-size subsets of a larger population.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./onomast.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	if debug {
		logger.SetLevel(logging.LevelDebug)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so config commands still work
		logger.Warnf("failed to load config: %v", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c
}

// currentConfig returns the loaded configuration, or the defaults when none was loaded.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		cfg = cfgpkg.Default()
	}
	return cfg
}
