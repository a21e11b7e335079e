package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/stockstat/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or check the stockstat configuration",
	Long: `The configuration lists the symbols offered by the menu, the benchmark
used for alpha and beta, where prices come from, and where the journal and
log live. STOCKSTAT_* environment variables override the file.

Examples:
  stockstat config init -o stockstat.yaml
  stockstat config init -o - > stockstat.yaml
  stockstat config validate stockstat.yaml
  stockstat --config stockstat.yaml config validate`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration (YAML or JSON by extension, - for stdout)",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file and summarize what it selects",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "stockstat.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "config file to check (default: argument or --config)")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configInitOutput == "-" {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}

	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  stockstat --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configValidatePath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = cfgFile
	}
	if path == "" {
		return errors.New("no config file given: pass a path, --file or --config")
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Configuration valid: %s\n", path)
	fmt.Fprintf(w, "  Symbols:   %v\n", cfg.Universe().Symbols())
	fmt.Fprintf(w, "  Benchmark: %s\n", cfg.Benchmark)
	if cfg.Provider.DataDir != "" {
		fmt.Fprintf(w, "  Prices:    CSV files in %s\n", cfg.Provider.DataDir)
	} else {
		fmt.Fprintf(w, "  Prices:    %s (timeout %s)\n", cfg.Provider.BaseURL, cfg.Provider.Timeout)
	}
	if cfg.Journal.Enabled {
		fmt.Fprintf(w, "  Journal:   %s\n", cfg.Journal.DBPath)
	} else {
		fmt.Fprintln(w, "  Journal:   disabled")
	}
	return nil
}
