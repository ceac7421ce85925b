package pricing

import (
	"fmt"
	"math"
)

// Input represents the economic and emissions parameters of one steam price calculation.
type Input struct {
	NaturalGasPrice         float64 `json:"natural_gas_price" yaml:"natural_gas_price"`
	BoilerEfficiency        float64 `json:"boiler_efficiency" yaml:"boiler_efficiency"`
	LCFSPrice               float64 `json:"lcfs_price" yaml:"lcfs_price"`
	BaselineEmissionsFactor float64 `json:"baseline_emissions_factor" yaml:"baseline_emissions_factor"`
	ProjectEmissionsFactor  float64 `json:"project_emissions_factor" yaml:"project_emissions_factor"`
	OMCost                  float64 `json:"om_cost" yaml:"om_cost"`
}

// Result contains the net steam price and the contributors used to derive it.
// All values are $/MMBtu of steam except EmissionsAvoided (ton CO2e/MMBtu)
// and RequiredFuel (MMBtu of gas per MMBtu of steam).
type Result struct {
	FuelCost         float64 `json:"fuel_cost"`
	EmissionsAvoided float64 `json:"emissions_avoided"`
	LCFSCredit       float64 `json:"lcfs_credit"`
	NetPrice         float64 `json:"net_price"`
	RequiredFuel     float64 `json:"required_fuel"`
}

// InvalidInputError reports the input field that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// DefaultInput returns the reference scenario used when no inputs are supplied.
func DefaultInput() Input {
	return Input{
		NaturalGasPrice:         4.00,
		BoilerEfficiency:        0.85,
		LCFSPrice:               100,
		BaselineEmissionsFactor: 0.053,
		ProjectEmissionsFactor:  0.0053,
		OMCost:                  0.50,
	}
}

// Validate checks every field and returns the first offending one.
func (in Input) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"natural_gas_price", in.NaturalGasPrice},
		{"boiler_efficiency", in.BoilerEfficiency},
		{"lcfs_price", in.LCFSPrice},
		{"baseline_emissions_factor", in.BaselineEmissionsFactor},
		{"project_emissions_factor", in.ProjectEmissionsFactor},
		{"om_cost", in.OMCost},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidInputError{Field: f.name, Reason: "must be a finite number"}
		}
		if f.name == "boiler_efficiency" {
			if f.value <= 0 || f.value > 1 {
				return &InvalidInputError{Field: f.name, Reason: "must be greater than 0 and at most 1"}
			}
			continue
		}
		if f.value < 0 {
			return &InvalidInputError{Field: f.name, Reason: "must be greater than or equal to 0"}
		}
	}

	return nil
}

// Compute converts pricing inputs into a net steam price and its breakdown.
// Values are left unrounded; display rounding is up to the caller.
func Compute(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	requiredFuel := 1 / in.BoilerEfficiency
	fuelCost := in.NaturalGasPrice / in.BoilerEfficiency
	emissionsAvoided := in.BaselineEmissionsFactor - in.ProjectEmissionsFactor
	lcfsCredit := emissionsAvoided * in.LCFSPrice
	netPrice := fuelCost - lcfsCredit + in.OMCost

	return Result{
		FuelCost:         fuelCost,
		EmissionsAvoided: emissionsAvoided,
		LCFSCredit:       lcfsCredit,
		NetPrice:         netPrice,
		RequiredFuel:     requiredFuel,
	}, nil
}
