package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Parameter names an input that a sensitivity sweep can vary.
type Parameter string

const (
	ParamNaturalGasPrice  Parameter = "natural_gas_price"
	ParamBoilerEfficiency Parameter = "boiler_efficiency"
	ParamLCFSPrice        Parameter = "lcfs_price"
	ParamOMCost           Parameter = "om_cost"
)

const sweepPoints = 11

// Point is one sample of a sensitivity sweep.
type Point struct {
	Value    float64 `json:"value"`
	NetPrice float64 `json:"net_price"`
}

// Parameters lists the sweepable inputs in display order.
func Parameters() []Parameter {
	return []Parameter{ParamNaturalGasPrice, ParamBoilerEfficiency, ParamLCFSPrice, ParamOMCost}
}

// ParseParameter maps a parameter name to a Parameter.
func ParseParameter(raw string) (Parameter, error) {
	p := Parameter(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Parameters() {
		if p == known {
			return p, nil
		}
	}
	return "", &InvalidInputError{Field: "parameter", Reason: fmt.Sprintf("must be one of %v", Parameters())}
}

// Value returns the current value of p in in.
func (p Parameter) Value(in Input) float64 {
	switch p {
	case ParamNaturalGasPrice:
		return in.NaturalGasPrice
	case ParamBoilerEfficiency:
		return in.BoilerEfficiency
	case ParamLCFSPrice:
		return in.LCFSPrice
	case ParamOMCost:
		return in.OMCost
	}
	return 0
}

func (p Parameter) apply(in Input, v float64) Input {
	switch p {
	case ParamNaturalGasPrice:
		in.NaturalGasPrice = v
	case ParamBoilerEfficiency:
		in.BoilerEfficiency = v
	case ParamLCFSPrice:
		in.LCFSPrice = v
	case ParamOMCost:
		in.OMCost = v
	}
	return in
}

// DefaultRange returns evenly spaced sweep values around the parameter's
// current value in base.
func DefaultRange(p Parameter, base Input) []float64 {
	v := p.Value(base)

	var lo, hi float64
	switch p {
	case ParamBoilerEfficiency:
		lo, hi = math.Max(0.5, v*0.8), math.Min(0.99, v*1.2)
	case ParamNaturalGasPrice:
		lo, hi = v*0.5, v*1.5
	default:
		lo, hi = math.Max(0, v*0.5), v*1.5
	}

	return linspace(lo, hi, sweepPoints)
}

// Sweep recomputes the net price for each value of p, holding the rest of
// base fixed. An empty values slice sweeps DefaultRange.
func Sweep(p Parameter, values []float64, base Input) ([]Point, error) {
	if _, err := ParseParameter(string(p)); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		values = DefaultRange(p, base)
	}

	points := make([]Point, 0, len(values))
	for _, v := range values {
		res, err := Compute(p.apply(base, v))
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Value: v, NetPrice: res.NetPrice})
	}
	return points, nil
}

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}
