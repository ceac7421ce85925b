package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/pricing"
	"github.com/Simplici0/steam.works/internal/report"
)

type pricingOptions struct {
	file string
	in   pricing.Input
}

func (o *pricingOptions) bind(cmd *cobra.Command) {
	o.in = pricing.DefaultInput()
	bindFloats(cmd, pricingFields(&o.in))
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "YAML scenario file with pricing inputs")
}

// resolve returns the flag values, or the scenario file with any explicitly
// set flags applied over it.
func (o *pricingOptions) resolve(cmd *cobra.Command) (pricing.Input, error) {
	if o.file == "" {
		return o.in, nil
	}
	in := pricing.DefaultInput()
	if err := readScenario(o.file, &in); err != nil {
		return pricing.Input{}, err
	}
	overlayChanged(cmd, pricingFields(&in), pricingFields(&o.in))
	return in, nil
}

func newPriceCmd(a *app) *cobra.Command {
	var opts pricingOptions

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute the net steam price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			res, err := pricing.Compute(in)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			a.logger.Debug("price computed",
				zap.Float64("fuel_cost", res.FuelCost),
				zap.Float64("lcfs_credit", res.LCFSCredit),
				zap.Float64("net_price", res.NetPrice),
			)

			if a.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					Input  pricing.Input  `json:"input"`
					Result pricing.Result `json:"result"`
				}{in, res})
			}
			return report.WriteBreakdown(cmd.OutOrStdout(), in, res)
		},
	}
	opts.bind(cmd)
	return cmd
}
