package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/batflap/internal/config"
)

var (
	flagConfigPath     string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration 'batflap play' would use, as YAML.

Config files are searched in this order:
  1. --config <path>
  2. ~/.arcade/configs/batflap.yaml
  3. ./configs/batflap.yaml
  4. built-in defaults

Examples:
  batflap config
  batflap config --defaults > ~/.arcade/configs/batflap.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source, err := config.Load(flagConfigPath)
	if err != nil {
		fail("%v", err)
	}

	data, err := config.Dump(cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
