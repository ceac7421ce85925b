// Package report renders pricing, revenue sharing and contract values as
// plain text, applying display rounding.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/steam.works/internal/contracts"
	"github.com/Simplici0/steam.works/internal/finance"
	"github.com/Simplici0/steam.works/internal/pricing"
)

const notAvailable = "N/A"

// Round rounds v half away from zero to places decimal places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Money formats a dollar amount with 2 decimal places.
func Money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Ratio formats an emissions factor or ratio with 4 decimal places.
func Ratio(v float64) string {
	return decimal.NewFromFloat(v).Round(4).StringFixed(4)
}

// Percent formats a rate (0.15) as a percentage ("15.00%").
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2) + "%"
}

// WriteBreakdown writes the calculation steps of a steam price.
func WriteBreakdown(w io.Writer, in pricing.Input, res pricing.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Net steam price: %s/MMBtu\n", Money(res.NetPrice))
	b.WriteString("\nCalculation:\n")
	fmt.Fprintf(&b, "- Fuel cost: %s/MMBtu (natural gas %s/MMBtu / boiler efficiency %s)\n",
		Money(res.FuelCost), Money(in.NaturalGasPrice), decimal.NewFromFloat(in.BoilerEfficiency).Round(2).StringFixed(2))
	fmt.Fprintf(&b, "- LCFS credit: %s/MMBtu (emissions avoided %s ton/MMBtu x LCFS price %s/ton)\n",
		Money(-res.LCFSCredit), Ratio(res.EmissionsAvoided), Money(in.LCFSPrice))
	fmt.Fprintf(&b, "- O&M cost: %s/MMBtu\n", Money(in.OMCost))
	fmt.Fprintf(&b, "- Net steam price: %s/MMBtu (fuel cost - LCFS credit + O&M cost)\n", Money(res.NetPrice))

	b.WriteString("\nInputs:\n")
	fmt.Fprintf(&b, "- Business-as-usual emissions: %s ton CO2e/MMBtu\n", Ratio(in.BaselineEmissionsFactor))
	fmt.Fprintf(&b, "- Project emissions: %s ton CO2e/MMBtu\n", Ratio(in.ProjectEmissionsFactor))
	fmt.Fprintf(&b, "- Required natural gas: %s MMBtu gas/MMBtu steam\n", Ratio(res.RequiredFuel))

	_, err := io.WriteString(w, b.String())
	return err
}

// WritePlan writes a revenue sharing plan summary.
func WritePlan(w io.Writer, plan finance.PlanResult) error {
	var b strings.Builder
	c := plan.Credit

	b.WriteString("Required carbon credits:\n")
	fmt.Fprintf(&b, "- Steam price without LCFS: %s/MMBtu\n", Money(c.PriceWithoutLCFS))
	fmt.Fprintf(&b, "- Target steam price: %s/MMBtu\n", Money(c.TargetPrice))
	fmt.Fprintf(&b, "- Price gap to fill: %s/MMBtu\n", Money(c.PriceGap))
	fmt.Fprintf(&b, "- Required LCFS value: %s/MMBtu\n", Money(c.RequiredValue))
	fmt.Fprintf(&b, "- Emissions avoided: %s ton/MMBtu\n", Ratio(c.EmissionsAvoided))
	fmt.Fprintf(&b, "- Required LCFS price: %s/ton CO2e\n", Money(c.RequiredLCFSPrice))
	fmt.Fprintf(&b, "- Annual LCFS revenue: %s\n", Money(plan.AnnualLCFSRevenue))

	b.WriteString("\nRevenue sharing:\n")
	fmt.Fprintf(&b, "- Offtaker share (%s): %s/year\n", Percent(plan.OfftakerShare), Money(plan.OfftakerAnnualRevenue))
	fmt.Fprintf(&b, "- Producer share (%s): %s/year\n", Percent(1-plan.OfftakerShare), Money(plan.ProducerAnnualRevenue))

	b.WriteString("\nProducer metrics:\n")
	fmt.Fprintf(&b, "- NPV: %s\n", Money(plan.ProducerNPV))
	fmt.Fprintf(&b, "- IRR: %s\n", optional(plan.ProducerIRR, Percent))
	fmt.Fprintf(&b, "- Payback: %s\n", optional(plan.PaybackYears, func(v float64) string {
		return decimal.NewFromFloat(v).Round(2).StringFixed(2) + " years"
	}))
	if plan.TargetAchieved {
		fmt.Fprintf(&b, "- Target IRR of %s is achieved\n", Percent(plan.TargetIRR))
	} else {
		fmt.Fprintf(&b, "- Target IRR of %s is not achieved\n", Percent(plan.TargetIRR))
	}
	if plan.RecommendedShare != nil {
		fmt.Fprintf(&b, "- Maximum offtaker share meeting target IRR: %s\n", Percent(*plan.RecommendedShare))
	} else {
		b.WriteString("- Target IRR cannot be achieved with current parameters\n")
	}

	b.WriteString("\nInsights:\n")
	fmt.Fprintf(&b, "- Total LCFS revenue over project life: %s\n", Money(plan.Insights.TotalLCFSRevenue))
	fmt.Fprintf(&b, "- Total producer revenue over project life: %s\n", Money(plan.Insights.TotalProducerRevenue))
	fmt.Fprintf(&b, "- Return on investment: %s\n", optional(plan.Insights.ROIPercent, func(v float64) string {
		return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
	}))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSavings writes a savings split summary and, when present, its yearly
// schedule.
func WriteSavings(w io.Writer, res finance.SavingsResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Annual steam cost savings: %s\n", Money(res.AnnualCostSavings))
	fmt.Fprintf(&b, "Annual LCFS credit value: %s\n", Money(res.LCFSCreditValue))
	fmt.Fprintf(&b, "Total annual benefit: %s\n", Money(res.TotalAnnualBenefit))
	fmt.Fprintf(&b, "- Offtaker (%s of savings): %s/year, NPV %s\n",
		Percent(res.OfftakerShare), Money(res.OfftakerAnnualShare), Money(res.OfftakerNPV))
	fmt.Fprintf(&b, "- Producer: %s/year, NPV %s\n", Money(res.ProducerAnnualShare), Money(res.ProducerNPV))
	fmt.Fprintf(&b, "- Producer IRR: %s\n", optional(res.ProducerIRR, Percent))
	fmt.Fprintf(&b, "- Payback: %s\n", optional(res.PaybackYears, func(v float64) string {
		return decimal.NewFromFloat(v).Round(2).StringFixed(2) + " years"
	}))

	if len(res.CashFlows) > 0 {
		b.WriteString("\nYear  Producer      Offtaker\n")
		for _, y := range res.CashFlows {
			fmt.Fprintf(&b, "%4d  %-12s  %s\n", y.Year, Money(y.ProducerCashFlow), Money(y.OfftakerCashFlow))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteContract writes a contract sheet from its stored snapshot.
func WriteContract(w io.Writer, c contracts.Contract) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Contract: %s\n", c.Title)
	fmt.Fprintf(&b, "Reference: %s\n", c.Reference)
	fmt.Fprintf(&b, "Counterparty: %s\n", c.Counterparty)
	fmt.Fprintf(&b, "Status: %s\n", c.Status)
	if c.VintageYear > 0 {
		fmt.Fprintf(&b, "Vintage: %d\n", c.VintageYear)
	}
	fmt.Fprintf(&b, "Annual volume: %s MMBtu\n", decimal.NewFromFloat(c.AnnualVolume).Round(0).String())
	fmt.Fprintf(&b, "Annual value: %s\n", Money(c.Snapshot.NetPrice*c.AnnualVolume))
	b.WriteString("\n")

	if err := WriteBreakdown(&b, c.Pricing, c.Snapshot); err != nil {
		return err
	}

	if c.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", c.Notes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func optional(v *float64, format func(float64) string) string {
	if v == nil {
		return notAvailable
	}
	return format(*v)
}
