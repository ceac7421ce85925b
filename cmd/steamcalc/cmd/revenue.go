package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/finance"
	"github.com/Simplici0/steam.works/internal/report"
)

func newRevenueCmd(a *app) *cobra.Command {
	var file string
	in := finance.DefaultPlanInput()

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Size the LCFS revenue needed for a target price and split it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := in
			if file != "" {
				plan = finance.DefaultPlanInput()
				if err := readScenario(file, &plan); err != nil {
					return err
				}
				overlayChanged(cmd, planFields(&plan), planFields(&in))
				if cmd.Flags().Changed("lifetime") {
					plan.LifetimeYears = in.LifetimeYears
				}
			}

			res, err := finance.Plan(plan)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			a.logger.Debug("revenue plan computed",
				zap.Float64("required_lcfs_price", res.Credit.RequiredLCFSPrice),
				zap.Bool("target_achieved", res.TargetAchieved),
			)

			if a.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return report.WritePlan(cmd.OutOrStdout(), res)
		},
	}
	bindFloats(cmd, planFields(&in))
	cmd.Flags().IntVar(&in.LifetimeYears, "lifetime", in.LifetimeYears, "project lifetime (years)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML scenario file with plan inputs")
	return cmd
}

func newSavingsCmd(a *app) *cobra.Command {
	var file string
	in := finance.DefaultSavingsInput()

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Split steam cost savings and LCFS value between offtaker and producer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			split := in
			if file != "" {
				split = finance.DefaultSavingsInput()
				if err := readScenario(file, &split); err != nil {
					return err
				}
				overlayChanged(cmd, savingsFields(&split), savingsFields(&in))
				if cmd.Flags().Changed("lifetime") {
					split.LifetimeYears = in.LifetimeYears
				}
				if cmd.Flags().Changed("detailed") {
					split.Detailed = in.Detailed
				}
			}

			res, err := finance.SavingsSplit(split)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			a.logger.Debug("savings split computed", zap.Float64("producer_npv", res.ProducerNPV))

			if a.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return report.WriteSavings(cmd.OutOrStdout(), res)
		},
	}
	bindFloats(cmd, savingsFields(&in))
	cmd.Flags().IntVar(&in.LifetimeYears, "lifetime", in.LifetimeYears, "project lifetime (years)")
	cmd.Flags().BoolVar(&in.Detailed, "detailed", false, "include the yearly cash flow schedule")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML scenario file with savings inputs")
	return cmd
}
