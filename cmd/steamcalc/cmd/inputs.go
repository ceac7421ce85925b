package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/steam.works/internal/finance"
	"github.com/Simplici0/steam.works/internal/pricing"
)

type floatField struct {
	flag  string
	usage string
	ptr   *float64
}

func pricingFields(in *pricing.Input) []floatField {
	return []floatField{
		{"natural-gas-price", "natural gas price ($/MMBtu)", &in.NaturalGasPrice},
		{"boiler-efficiency", "boiler efficiency (0-1]", &in.BoilerEfficiency},
		{"lcfs-price", "LCFS credit price ($/ton CO2e)", &in.LCFSPrice},
		{"baseline-emissions", "business-as-usual emissions (ton CO2e/MMBtu)", &in.BaselineEmissionsFactor},
		{"project-emissions", "project emissions (ton CO2e/MMBtu)", &in.ProjectEmissionsFactor},
		{"om-cost", "operations and maintenance cost ($/MMBtu)", &in.OMCost},
	}
}

func planFields(in *finance.PlanInput) []floatField {
	return append(pricingFields(&in.Pricing),
		floatField{"target-price", "target steam price ($/MMBtu)", &in.TargetPrice},
		floatField{"annual-usage", "annual steam usage (MMBtu)", &in.AnnualUsage},
		floatField{"capital", "capital investment ($)", &in.CapitalInvestment},
		floatField{"discount-rate", "discount rate", &in.DiscountRate},
		floatField{"target-irr", "producer target IRR", &in.TargetIRR},
		floatField{"offtaker-share", "offtaker share of LCFS revenue (0-1)", &in.OfftakerShare},
	)
}

func savingsFields(in *finance.SavingsInput) []floatField {
	return []floatField{
		{"steam-price", "new steam price ($/MMBtu)", &in.SteamPrice},
		{"baseline-steam-price", "current steam price ($/MMBtu)", &in.BaselineSteamPrice},
		{"annual-usage", "annual steam usage (MMBtu)", &in.AnnualUsage},
		{"lcfs-credit-value", "annual LCFS credit value ($)", &in.LCFSCreditValue},
		{"capital", "capital investment ($)", &in.CapitalInvestment},
		{"discount-rate", "discount rate", &in.DiscountRate},
		{"offtaker-share", "offtaker share of the total benefit (0-1)", &in.OfftakerShare},
	}
}

func bindFloats(cmd *cobra.Command, fields []floatField) {
	for _, f := range fields {
		cmd.Flags().Float64Var(f.ptr, f.flag, *f.ptr, f.usage)
	}
}

// overlayChanged copies every flag the user set from src into dst. Both
// slices come from the same field constructor so indexes line up.
func overlayChanged(cmd *cobra.Command, dst, src []floatField) {
	for i, f := range src {
		if cmd.Flags().Changed(f.flag) {
			*dst[i].ptr = *f.ptr
		}
	}
}

// readScenario decodes a YAML scenario file on top of dst.
func readScenario(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return nil
}
