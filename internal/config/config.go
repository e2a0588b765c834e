package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/onomast-cli/internal/utils"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "onomast.yaml"

// Global configuration structure.
type Global struct {
	PopulationFile string `mapstructure:"population_file" yaml:"population_file"`
	ReferenceFile  string `mapstructure:"reference_file" yaml:"reference_file"`
	// Sizes must match the files' record counts; 0 takes the count from the file.
	PopulationSize  int    `mapstructure:"population_size" yaml:"population_size"`
	ReferenceSize   int    `mapstructure:"reference_size" yaml:"reference_size"`
	Samples         int    `mapstructure:"samples" yaml:"samples"`
	EnforceDistinct bool   `mapstructure:"enforce_distinct" yaml:"enforce_distinct"`
	Seed            uint64 `mapstructure:"seed" yaml:"seed"`
	Workers         int    `mapstructure:"workers" yaml:"workers"`
	ProgressEvery   int    `mapstructure:"progress_every" yaml:"progress_every"`

	// Input parsing
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`

	// Output
	OutputDir string   `mapstructure:"output_dir" yaml:"output_dir"`
	Plots     bool     `mapstructure:"plots" yaml:"plots"`
	Formats   []string `mapstructure:"formats" yaml:"formats"`
	DPI       int      `mapstructure:"dpi" yaml:"dpi"`
	// Names of the two record sets in reports and legends; empty keeps the defaults.
	ReferenceLabel  string `mapstructure:"reference_label" yaml:"reference_label"`
	PopulationLabel string `mapstructure:"population_label" yaml:"population_label"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Global {
	return &Global{
		PopulationFile: "seals-bullae.csv",
		ReferenceFile:  "handles.csv",
		Samples:        1000000,
		ProgressEvery:  10000,
		OutputDir:      ".",
		Plots:          true,
		Formats:        []string{"jpg", "tif"},
		DPI:            300,
	}
}

// Validate reports settings that can never produce a run.
func (c *Global) Validate() error {
	switch {
	case c.Samples < 1:
		return fmt.Errorf("samples must be >= 1 (got %d)", c.Samples)
	case c.PopulationSize < 0 || c.ReferenceSize < 0:
		return errors.New("population_size and reference_size must not be negative")
	case c.PopulationSize > 0 && c.ReferenceSize > c.PopulationSize:
		return fmt.Errorf("reference_size %d exceeds population_size %d", c.ReferenceSize, c.PopulationSize)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative (got %d)", c.Workers)
	case len([]rune(c.Delimiter)) > 1:
		return fmt.Errorf("delimiter must be a single character (got %q)", c.Delimiter)
	}
	return nil
}

// Save writes the given configuration to the cfgFile path, or to
// ./onomast.yaml when cfgFile is empty.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		path = DefaultFile
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (ONOMAST_*, optionally from .env) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ONOMAST")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("population_file", d.PopulationFile)
	v.SetDefault("reference_file", d.ReferenceFile)
	v.SetDefault("population_size", 0)
	v.SetDefault("reference_size", 0)
	v.SetDefault("samples", d.Samples)
	v.SetDefault("enforce_distinct", false)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("progress_every", d.ProgressEvery)
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("plots", d.Plots)
	v.SetDefault("formats", d.Formats)
	v.SetDefault("dpi", d.DPI)
	v.SetDefault("reference_label", "")
	v.SetDefault("population_label", "")

	if cfgFile != "" {
		// A missing explicit file is created later by `config set` or `init`.
		if _, err := os.Stat(cfgFile); err == nil {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("onomast")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
