// Package finance sizes LCFS credit revenue and evaluates how it is shared
// between a steam offtaker and the producer.
package finance

import "math"

const (
	irrLowerBound = -0.99
	irrUpperLimit = 1e6
	irrTolerance  = 1e-12
	irrMaxIter    = 500
)

// NPV discounts flows at rate, with flows[0] at t=0 (undiscounted).
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	factor := 1.0
	for _, cf := range flows {
		total += cf / factor
		factor *= 1 + rate
	}
	return total
}

// IRR returns the rate at which the NPV of flows is zero. The second value
// is false when the flows never change sign or no root can be bracketed.
// Non-negative roots are preferred over negative ones.
func IRR(flows []float64) (float64, bool) {
	if !changesSign(flows) {
		return 0, false
	}

	f := func(r float64) float64 { return NPV(r, flows) }

	if at0 := f(0); at0 == 0 {
		return 0, true
	}

	// Search upward from 0 first, then down towards -99%.
	hi := 1.0
	for hi <= irrUpperLimit {
		if brackets(f(0), f(hi)) {
			return bisect(f, 0, hi)
		}
		hi *= 2
	}
	if brackets(f(irrLowerBound), f(0)) {
		return bisect(f, irrLowerBound, 0)
	}
	return 0, false
}

// Payback returns the number of periods until the cumulative flows turn
// non-negative, interpolated linearly within the recovering period.
func Payback(flows []float64) (float64, bool) {
	cumulative := 0.0
	for i, cf := range flows {
		prev := cumulative
		cumulative += cf
		if cumulative < 0 {
			continue
		}
		if i == 0 {
			return 0, true
		}
		return float64(i-1) + (-prev)/(cumulative-prev), true
	}
	return 0, false
}

func changesSign(flows []float64) bool {
	pos, neg := false, false
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// brackets reports whether a and b bracket a root.
func brackets(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return (a <= 0 && b >= 0) || (a >= 0 && b <= 0)
}

func bisect(f func(float64) float64, lo, hi float64) (float64, bool) {
	flo := f(lo)
	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 || (hi-lo)/2 < irrTolerance {
			return mid, true
		}
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}
