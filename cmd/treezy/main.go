// Command treezy is a small toolkit for phylogenetic trees in Newick
// format: inspect files, reroot trees, draw random topologies and compute
// Robinson-Foulds distances.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/4ment/treezy/tree"
)

// Config carries the output and parsing settings that can be shared across
// subcommands through --config.
type Config struct {
	// Precision is the number of decimal places for branch lengths on
	// output; 0 or negative means full precision.
	Precision int `yaml:"precision"`

	// StripQuotes removes surrounding quotes from leaf names on input.
	StripQuotes bool `yaml:"strip_quotes"`

	// InternalNames emits internal node names on output.
	InternalNames bool `yaml:"internal_names"`

	// Translation maps leaf names to display names on output.
	Translation map[string]string `yaml:"translation"`
}

var (
	config     Config
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "treezy",
	Short:         "Parse, edit and compare phylogenetic trees in Newick format",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		if configPath != "" {
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			config = loaded
			slog.Debug("configuration loaded", "path", configPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// newickOptions translates the loaded config into serialization options.
func newickOptions() *tree.NewickOptions {
	opts := tree.DefaultNewickOptions()
	if config.Precision > 0 {
		opts.DecimalPrecision = config.Precision
	}
	opts.IncludeInternalNodeName = config.InternalNames
	if len(config.Translation) > 0 {
		opts.Translator = config.Translation
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treezy:", err)
		os.Exit(1)
	}
}
