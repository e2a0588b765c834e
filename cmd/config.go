package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/onomast-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Onomast configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yaml.Marshal(currentConfig())
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := currentConfig()
		if err := setConfigValue(c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "population_file":
		c.PopulationFile = val
	case "reference_file":
		c.ReferenceFile = val
	case "population_size":
		c.PopulationSize, err = atoi()
	case "reference_size":
		c.ReferenceSize, err = atoi()
	case "samples":
		c.Samples, err = atoi()
	case "workers":
		c.Workers, err = atoi()
	case "progress_every":
		c.ProgressEvery, err = atoi()
	case "dpi":
		c.DPI, err = atoi()
	case "seed":
		c.Seed, err = strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
	case "enforce_distinct", "plots":
		b, perr := strconv.ParseBool(val)
		if perr != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, perr)
		}
		if key == "plots" {
			c.Plots = b
		} else {
			c.EnforceDistinct = b
		}
	case "delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "sheet":
		c.Sheet = val
	case "output_dir":
		c.OutputDir = val
	case "reference_label":
		c.ReferenceLabel = val
	case "population_label":
		c.PopulationLabel = val
	case "formats":
		var formats []string
		for _, f := range strings.Split(val, ",") {
			if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
				formats = append(formats, f)
			}
		}
		c.Formats = formats
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
