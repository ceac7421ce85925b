package finance

import "math"

// SavingsInput describes a split of steam cost savings plus LCFS credit value.
type SavingsInput struct {
	SteamPrice         float64 `json:"steam_price" yaml:"steam_price"`
	BaselineSteamPrice float64 `json:"baseline_steam_price" yaml:"baseline_steam_price"`
	AnnualUsage        float64 `json:"annual_usage" yaml:"annual_usage"`
	LCFSCreditValue    float64 `json:"lcfs_credit_value" yaml:"lcfs_credit_value"`
	CapitalInvestment  float64 `json:"capital_investment" yaml:"capital_investment"`
	LifetimeYears      int     `json:"lifetime_years" yaml:"lifetime_years"`
	DiscountRate       float64 `json:"discount_rate" yaml:"discount_rate"`
	OfftakerShare      float64 `json:"offtaker_share" yaml:"offtaker_share"`
	Detailed           bool    `json:"detailed" yaml:"detailed"`
}

// YearFlow is one year of the savings split schedule.
type YearFlow struct {
	Year             int     `json:"year"`
	ProducerCashFlow float64 `json:"producer_cash_flow"`
	OfftakerCashFlow float64 `json:"offtaker_cash_flow"`
	ProducerPV       float64 `json:"producer_pv"`
	OfftakerPV       float64 `json:"offtaker_pv"`
}

// SavingsResult is the evaluated savings split.
type SavingsResult struct {
	AnnualCostSavings   float64    `json:"annual_cost_savings"`
	LCFSCreditValue     float64    `json:"lcfs_credit_value"`
	TotalAnnualBenefit  float64    `json:"total_annual_benefit"`
	OfftakerAnnualShare float64    `json:"offtaker_annual_share"`
	ProducerAnnualShare float64    `json:"producer_annual_share"`
	ProducerNPV         float64    `json:"producer_npv"`
	OfftakerNPV         float64    `json:"offtaker_npv"`
	ProducerIRR         *float64   `json:"producer_irr"`
	PaybackYears        *float64   `json:"payback_years"`
	OfftakerShare       float64    `json:"offtaker_share"`
	CashFlows           []YearFlow `json:"cash_flows,omitempty"`
}

// DefaultSavingsInput returns the reference savings scenario.
func DefaultSavingsInput() SavingsInput {
	return SavingsInput{
		SteamPrice:         5.00,
		BaselineSteamPrice: 7.50,
		AnnualUsage:        100000,
		LCFSCreditValue:    50000,
		CapitalInvestment:  1000000,
		LifetimeYears:      10,
		DiscountRate:       0.08,
		OfftakerShare:      0.5,
	}
}

// SavingsSplit gives the offtaker a share of the steam cost savings and the
// producer the remaining savings plus the LCFS credit value.
func SavingsSplit(in SavingsInput) (SavingsResult, error) {
	if err := in.validate(); err != nil {
		return SavingsResult{}, err
	}

	savings := (in.BaselineSteamPrice - in.SteamPrice) * in.AnnualUsage
	benefit := savings + in.LCFSCreditValue
	offtaker := savings * in.OfftakerShare
	producer := benefit - offtaker

	producerFlows := []float64{-in.CapitalInvestment}
	offtakerFlows := []float64{0}
	var schedule []YearFlow
	for year := 1; year <= in.LifetimeYears; year++ {
		producerFlows = append(producerFlows, producer)
		offtakerFlows = append(offtakerFlows, offtaker)
		if in.Detailed {
			pv := 1 / math.Pow(1+in.DiscountRate, float64(year))
			schedule = append(schedule, YearFlow{
				Year:             year,
				ProducerCashFlow: producer,
				OfftakerCashFlow: offtaker,
				ProducerPV:       producer * pv,
				OfftakerPV:       offtaker * pv,
			})
		}
	}

	out := SavingsResult{
		AnnualCostSavings:   savings,
		LCFSCreditValue:     in.LCFSCreditValue,
		TotalAnnualBenefit:  benefit,
		OfftakerAnnualShare: offtaker,
		ProducerAnnualShare: producer,
		ProducerNPV:         NPV(in.DiscountRate, producerFlows),
		OfftakerNPV:         NPV(in.DiscountRate, offtakerFlows),
		OfftakerShare:       in.OfftakerShare,
		CashFlows:           schedule,
	}
	if irr, ok := IRR(producerFlows); ok {
		out.ProducerIRR = &irr
	}
	if years, ok := Payback(producerFlows); ok {
		out.PaybackYears = &years
	}
	return out, nil
}

func (in SavingsInput) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"steam_price", in.SteamPrice},
		{"baseline_steam_price", in.BaselineSteamPrice},
		{"annual_usage", in.AnnualUsage},
		{"lcfs_credit_value", in.LCFSCreditValue},
		{"capital_investment", in.CapitalInvestment},
		{"discount_rate", in.DiscountRate},
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
