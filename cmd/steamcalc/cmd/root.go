// Package cmd provides the steamcalc commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/logging"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=".
var version = "dev"

type app struct {
	verbose bool
	json    bool
	logger  *zap.Logger
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "steamcalc",
		Short: "Price low-carbon steam with LCFS credits",
		Long: `steamcalc computes the net price of steam from natural gas and boiler
inputs, the LCFS credit earned by the avoided emissions, and the revenue
sharing economics of a steam supply deal.

Examples:
  steamcalc price
  steamcalc price --natural-gas-price 5 --boiler-efficiency 0.8
  steamcalc price --file scenario.yaml --json
  steamcalc sensitivity --param lcfs_price
  steamcalc revenue --target-price 4 --offtaker-share 0.4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.DefaultConfig()
			cfg.Level = "warn"
			if a.verbose {
				cfg.Level = "debug"
			}
			logger, err := logging.New(cfg)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&a.json, "json", false, "print results as JSON")

	root.AddCommand(
		newPriceCmd(a),
		newSensitivityCmd(a),
		newRevenueCmd(a),
		newSavingsCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "steamcalc version %s\n", version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
