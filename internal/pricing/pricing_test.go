package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCompute_ReferenceExample(t *testing.T) {
	in := Input{
		NaturalGasPrice:         5,
		BoilerEfficiency:        0.8,
		LCFSPrice:               100,
		BaselineEmissionsFactor: 0.06,
		ProjectEmissionsFactor:  0.02,
		OMCost:                  0.5,
	}

	result, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	nearlyEqual(t, "fuelCost", result.FuelCost, 6.25)
	nearlyEqual(t, "emissionsAvoided", result.EmissionsAvoided, 0.04)
	nearlyEqual(t, "lcfsCredit", result.LCFSCredit, 4.0)
	nearlyEqual(t, "netPrice", result.NetPrice, 2.75)
	nearlyEqual(t, "requiredFuel", result.RequiredFuel, 1.25)
}

func TestCompute_MatchesFormula(t *testing.T) {
	cases := []Input{
		DefaultInput(),
		{NaturalGasPrice: 0, BoilerEfficiency: 1, LCFSPrice: 0, OMCost: 0},
		{NaturalGasPrice: 12.3, BoilerEfficiency: 0.51, LCFSPrice: 250, BaselineEmissionsFactor: 0.1, ProjectEmissionsFactor: 0.01, OMCost: 3},
		{NaturalGasPrice: 2, BoilerEfficiency: 0.99, LCFSPrice: 40, BaselineEmissionsFactor: 0.05, ProjectEmissionsFactor: 0.05, OMCost: 1.2},
	}

	for _, in := range cases {
		result, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute(%+v): %v", in, err)
		}
		want := in.NaturalGasPrice/in.BoilerEfficiency -
			(in.BaselineEmissionsFactor-in.ProjectEmissionsFactor)*in.LCFSPrice +
			in.OMCost
		nearlyEqual(t, "netPrice", result.NetPrice, want)
	}
}

func TestCompute_DirtierProjectRaisesPrice(t *testing.T) {
	in := Input{
		NaturalGasPrice:         4,
		BoilerEfficiency:        0.8,
		LCFSPrice:               100,
		BaselineEmissionsFactor: 0.02,
		ProjectEmissionsFactor:  0.05,
		OMCost:                  0.5,
	}

	result, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if result.EmissionsAvoided >= 0 {
		t.Fatalf("emissionsAvoided = %v, want negative", result.EmissionsAvoided)
	}
	if result.LCFSCredit >= 0 {
		t.Fatalf("lcfsCredit = %v, want negative", result.LCFSCredit)
	}
	nearlyEqual(t, "netPrice", result.NetPrice, 5+3+0.5)
	if result.NetPrice <= result.FuelCost+in.OMCost {
		t.Fatalf("netPrice %v should exceed fuel+O&M %v", result.NetPrice, result.FuelCost+in.OMCost)
	}
}

func TestCompute_IsRepeatable(t *testing.T) {
	in := Input{NaturalGasPrice: 3.7, BoilerEfficiency: 0.83, LCFSPrice: 71.5, BaselineEmissionsFactor: 0.0531, ProjectEmissionsFactor: 0.0049, OMCost: 0.33}

	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute (iteration=%d): %v", i, err)
		}
		if again != first {
			t.Fatalf("iteration %d: got %+v, want %+v", i, again, first)
		}
	}
}

func TestCompute_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"zero efficiency", func(in *Input) { in.BoilerEfficiency = 0 }, "boiler_efficiency"},
		{"negative efficiency", func(in *Input) { in.BoilerEfficiency = -0.2 }, "boiler_efficiency"},
		{"efficiency above one", func(in *Input) { in.BoilerEfficiency = 1.2 }, "boiler_efficiency"},
		{"negative gas price", func(in *Input) { in.NaturalGasPrice = -1 }, "natural_gas_price"},
		{"negative lcfs price", func(in *Input) { in.LCFSPrice = -5 }, "lcfs_price"},
		{"negative baseline", func(in *Input) { in.BaselineEmissionsFactor = -0.01 }, "baseline_emissions_factor"},
		{"negative project", func(in *Input) { in.ProjectEmissionsFactor = -0.01 }, "project_emissions_factor"},
		{"negative om", func(in *Input) { in.OMCost = -0.5 }, "om_cost"},
		{"nan gas price", func(in *Input) { in.NaturalGasPrice = math.NaN() }, "natural_gas_price"},
		{"infinite lcfs price", func(in *Input) { in.LCFSPrice = math.Inf(1) }, "lcfs_price"},
		{"infinite efficiency", func(in *Input) { in.BoilerEfficiency = math.Inf(-1) }, "boiler_efficiency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			tt.edit(&in)

			_, err := Compute(in)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if invalid.Field != tt.field {
				t.Fatalf("field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}
