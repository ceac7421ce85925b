package finance

import (
	"math"

	"github.com/Simplici0/steam.works/internal/pricing"
)

const (
	maxLifetimeYears = 100
	shareCurveSteps  = 20
)

// CreditRequirement is the LCFS credit needed to bring steam down to a target price.
type CreditRequirement struct {
	PriceWithoutLCFS  float64 `json:"price_without_lcfs"`
	TargetPrice       float64 `json:"target_price"`
	PriceGap          float64 `json:"price_gap"`
	RequiredValue     float64 `json:"required_value"`
	EmissionsAvoided  float64 `json:"emissions_avoided"`
	RequiredLCFSPrice float64 `json:"required_lcfs_price"`
}

// PlanInput holds the parameters of an LCFS revenue sharing plan.
type PlanInput struct {
	Pricing           pricing.Input `json:"pricing" yaml:"pricing"`
	TargetPrice       float64       `json:"target_price" yaml:"target_price"`
	AnnualUsage       float64       `json:"annual_usage" yaml:"annual_usage"`
	CapitalInvestment float64       `json:"capital_investment" yaml:"capital_investment"`
	LifetimeYears     int           `json:"lifetime_years" yaml:"lifetime_years"`
	DiscountRate      float64       `json:"discount_rate" yaml:"discount_rate"`
	TargetIRR         float64       `json:"target_irr" yaml:"target_irr"`
	OfftakerShare     float64       `json:"offtaker_share" yaml:"offtaker_share"`
}

// SharePoint is the producer's return at one offtaker share.
type SharePoint struct {
	OfftakerShare float64  `json:"offtaker_share"`
	ProducerIRR   *float64 `json:"producer_irr"`
	ProducerNPV   float64  `json:"producer_npv"`
}

// Insights are lifetime totals of a plan.
type Insights struct {
	TotalLCFSRevenue     float64  `json:"total_lcfs_revenue"`
	TotalProducerRevenue float64  `json:"total_producer_revenue"`
	ROIPercent           *float64 `json:"roi_percent"`
}

// PlanResult is the evaluated revenue sharing plan. Optional metrics are nil
// when they do not exist for the given cash flows.
type PlanResult struct {
	Credit                CreditRequirement `json:"credit"`
	AnnualLCFSRevenue     float64           `json:"annual_lcfs_revenue"`
	OfftakerShare         float64           `json:"offtaker_share"`
	OfftakerAnnualRevenue float64           `json:"offtaker_annual_revenue"`
	ProducerAnnualRevenue float64           `json:"producer_annual_revenue"`
	ProducerCashFlows     []float64         `json:"producer_cash_flows"`
	ProducerNPV           float64           `json:"producer_npv"`
	ProducerIRR           *float64          `json:"producer_irr"`
	PaybackYears          *float64          `json:"payback_years"`
	TargetIRR             float64           `json:"target_irr"`
	TargetAchieved        bool              `json:"target_achieved"`
	IRRGap                *float64          `json:"irr_gap"`
	ShareCurve            []SharePoint      `json:"share_curve"`
	RecommendedShare      *float64          `json:"recommended_share"`
	Insights              Insights          `json:"insights"`
}

// DefaultPlanInput returns the reference plan scenario.
func DefaultPlanInput() PlanInput {
	return PlanInput{
		Pricing:           pricing.DefaultInput(),
		TargetPrice:       4.5,
		AnnualUsage:       100000,
		CapitalInvestment: 1000000,
		LifetimeYears:     10,
		DiscountRate:      0.08,
		TargetIRR:         0.15,
		OfftakerShare:     0.5,
	}
}

// RequiredCredit computes the LCFS value per MMBtu, and the implied credit
// price per ton, needed to bring the no-credit steam price down to target.
func RequiredCredit(in pricing.Input, target float64) (CreditRequirement, error) {
	if err := finite("target_price", target); err != nil {
		return CreditRequirement{}, err
	}

	noCredit := in
	noCredit.LCFSPrice = 0
	res, err := pricing.Compute(noCredit)
	if err != nil {
		return CreditRequirement{}, err
	}

	gap := res.NetPrice - target
	req := CreditRequirement{
		PriceWithoutLCFS: res.NetPrice,
		TargetPrice:      target,
		PriceGap:         gap,
		RequiredValue:    math.Max(0, gap),
		EmissionsAvoided: res.EmissionsAvoided,
	}
	if res.EmissionsAvoided > 0 {
		req.RequiredLCFSPrice = req.RequiredValue / res.EmissionsAvoided
	}
	return req, nil
}

// Plan sizes the annual LCFS revenue, splits it at in.OfftakerShare and
// evaluates the producer's return on the capital investment.
func Plan(in PlanInput) (PlanResult, error) {
	if err := in.validate(); err != nil {
		return PlanResult{}, err
	}

	credit, err := RequiredCredit(in.Pricing, in.TargetPrice)
	if err != nil {
		return PlanResult{}, err
	}

	annual := credit.RequiredValue * in.AnnualUsage
	producerAnnual := annual * (1 - in.OfftakerShare)
	flows := producerFlows(in.CapitalInvestment, producerAnnual, in.LifetimeYears)

	out := PlanResult{
		Credit:                credit,
		AnnualLCFSRevenue:     annual,
		OfftakerShare:         in.OfftakerShare,
		OfftakerAnnualRevenue: annual * in.OfftakerShare,
		ProducerAnnualRevenue: producerAnnual,
		ProducerCashFlows:     flows,
		ProducerNPV:           NPV(in.DiscountRate, flows),
		TargetIRR:             in.TargetIRR,
	}

	if irr, ok := IRR(flows); ok {
		gap := irr - in.TargetIRR
		out.ProducerIRR = &irr
		out.IRRGap = &gap
		out.TargetAchieved = irr >= in.TargetIRR
	}
	if years, ok := Payback(flows); ok {
		out.PaybackYears = &years
	}

	out.ShareCurve = shareCurve(in, annual)
	out.RecommendedShare = recommendedShare(out.ShareCurve, in.TargetIRR)

	totalProducer := producerAnnual * float64(in.LifetimeYears)
	out.Insights = Insights{
		TotalLCFSRevenue:     annual * float64(in.LifetimeYears),
		TotalProducerRevenue: totalProducer,
	}
	if in.CapitalInvestment > 0 {
		roi := (totalProducer/in.CapitalInvestment - 1) * 100
		out.Insights.ROIPercent = &roi
	}

	return out, nil
}

func (in PlanInput) validate() error {
	if err := in.Pricing.Validate(); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"target_price", in.TargetPrice},
		{"annual_usage", in.AnnualUsage},
		{"capital_investment", in.CapitalInvestment},
		{"discount_rate", in.DiscountRate},
		{"target_irr", in.TargetIRR},
		{"offtaker_share", in.OfftakerShare},
	} {
		if err := finite(f.name, f.value); err != nil {
			return err
		}
	}
	if in.AnnualUsage < 0 {
		return invalid("annual_usage", "must be greater than or equal to 0")
	}
	if in.CapitalInvestment < 0 {
		return invalid("capital_investment", "must be greater than or equal to 0")
	}
	if in.LifetimeYears < 1 || in.LifetimeYears > maxLifetimeYears {
		return invalid("lifetime_years", "must be between 1 and 100")
	}
	if in.DiscountRate <= -1 {
		return invalid("discount_rate", "must be greater than -1")
	}
	if in.OfftakerShare < 0 || in.OfftakerShare > 1 {
		return invalid("offtaker_share", "must be between 0 and 1")
	}
	return nil
}

func producerFlows(capital, annual float64, years int) []float64 {
	flows := make([]float64, 0, years+1)
	flows = append(flows, -capital)
	for year := 1; year <= years; year++ {
		flows = append(flows, annual)
	}
	return flows
}

func shareCurve(in PlanInput, annual float64) []SharePoint {
	curve := make([]SharePoint, 0, shareCurveSteps+1)
	for i := 0; i <= shareCurveSteps; i++ {
		share := float64(i) / shareCurveSteps
		flows := producerFlows(in.CapitalInvestment, annual*(1-share), in.LifetimeYears)
		p := SharePoint{OfftakerShare: share, ProducerNPV: NPV(in.DiscountRate, flows)}
		if irr, ok := IRR(flows); ok {
			p.ProducerIRR = &irr
		}
		curve = append(curve, p)
	}
	return curve
}

// recommendedShare picks the largest offtaker share that still meets the
// producer's target IRR.
func recommendedShare(curve []SharePoint, target float64) *float64 {
	var best *float64
	for i := range curve {
		p := curve[i]
		if p.ProducerIRR == nil || *p.ProducerIRR < target {
			continue
		}
		share := p.OfftakerShare
		best = &share
	}
	return best
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func invalid(field, reason string) error {
	return &pricing.InvalidInputError{Field: field, Reason: reason}
}
