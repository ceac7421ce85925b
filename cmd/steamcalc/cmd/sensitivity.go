package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/pricing"
	"github.com/Simplici0/steam.works/internal/report"
)

func newSensitivityCmd(a *app) *cobra.Command {
	var (
		opts   pricingOptions
		param  string
		values []float64
	)

	names := make([]string, 0, len(pricing.Parameters()))
	for _, p := range pricing.Parameters() {
		names = append(names, string(p))
	}

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep one input and report the net price at each value",
		Long: `Sweep one pricing input across a range of values while holding the rest
fixed. Without --values the sweep covers 11 points around the current value.

Parameters: ` + strings.Join(names, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pricing.ParseParameter(param)
			if err != nil {
				return err
			}
			in, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			points, err := pricing.Sweep(p, values, in)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			a.logger.Debug("sensitivity sweep", zap.String("parameter", string(p)), zap.Int("points", len(points)))

			if a.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					Parameter pricing.Parameter `json:"parameter"`
					Points    []pricing.Point   `json:"points"`
				}{p, points})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s %s\n", p, "net price ($/MMBtu)")
			for _, pt := range points {
				fmt.Fprintf(w, "%-12s %s\n", report.Ratio(pt.Value), report.Money(pt.NetPrice))
			}
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&param, "param", "p", string(pricing.ParamNaturalGasPrice), "input to sweep")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "explicit sweep values (comma separated)")
	return cmd
}
