package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockstat/config"
	"github.com/rustyeddy/stockstat/report"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the stock symbols available for analysis",
	Args:  cobra.NoArgs,
	RunE:  runSymbols,
}

var symbolsSorted bool

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().BoolVarP(&symbolsSorted, "sorted", "s", false, "list alphabetically instead of in configured order")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	u := cfg.Universe()
	symbols := u.Symbols()
	if symbolsSorted {
		symbols = u.Sorted()
	}
	report.PrintSymbols(cmd.OutOrStdout(), symbols)
	return nil
}
