package finbook

import (
	"errors"
	"math"
)

// Flow is one entry of a project's cash-flow table: a signed value and its
// distance in days before the reference date. Buys are positive, sells and
// dividends negative, and the final liquidation (synthetic or realized)
// carries the opposite sign at day offset zero.
type Flow struct {
	Days  int
	Value float64
}

// ErrNoConvergence is returned by SolveIRR when the root-finder fails to
// settle on a meaningful per-day rate, e.g. for a cash-flow table whose
// entries all share one sign.
var ErrNoConvergence = errors.New("irr: root-finder did not converge")

const (
	irrGuess    = 1.01 // near break-even
	irrTol      = 1e-10
	irrMaxIter  = 100
	irrRateMin  = 0.5 // a per-day rate outside [0.5, 1.5] is garbage, not a return
	irrRateMax  = 1.5
	irrSpanStep = 0.01
)

// npv evaluates f(r) = Σ value_i * r^days_i over the cash-flow table.
// The exponent is in days: r is a per-day compounding rate.
func npv(flows []Flow, r float64) float64 {
	var sum float64
	for _, f := range flows {
		sum += f.Value * math.Pow(r, float64(f.Days))
	}
	return sum
}

// npvPrime is the derivative of npv with respect to r.
func npvPrime(flows []Flow, r float64) float64 {
	var sum float64
	for _, f := range flows {
		if f.Days == 0 {
			continue
		}
		sum += f.Value * float64(f.Days) * math.Pow(r, float64(f.Days-1))
	}
	return sum
}

// HasSignChange reports whether the table carries both positive and negative
// values. Without a sign change f has no economically meaningful root and
// the solver must not be invoked.
func HasSignChange(flows []Flow) bool {
	var pos, neg bool
	for _, f := range flows {
		switch {
		case f.Value > 0:
			pos = true
		case f.Value < 0:
			neg = true
		}
	}
	return pos && neg
}

// SolveIRR finds the per-day rate r zeroing the net present value of the
// cash-flow table. It runs a bounded Newton iteration from a fixed initial
// guess near break-even and falls back to bisection when Newton stalls or
// escapes the plausible rate interval. A non-finite or out-of-interval
// result is reported as ErrNoConvergence, never returned as a rate.
//
// When f has multiple roots the returned one is whichever the iteration
// reaches from the fixed guess; no attempt is made to enumerate roots.
func SolveIRR(flows []Flow) (float64, error) {
	if len(flows) == 0 {
		return 0, errors.New("irr: empty cash-flow table")
	}

	r := irrGuess
	for i := 0; i < irrMaxIter; i++ {
		f := npv(flows, r)
		if math.Abs(f) < irrTol {
			return checkRate(r)
		}
		d := npvPrime(flows, r)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := r - f/d
		if math.IsNaN(next) || next <= irrRateMin || next >= irrRateMax {
			break
		}
		if math.Abs(next-r) < irrTol {
			return checkRate(next)
		}
		r = next
	}

	return bisectIRR(flows)
}

// bisectIRR scans the plausible rate interval for a sign change of f and
// narrows it down. It is the slow path for tables Newton cannot handle.
func bisectIRR(flows []Flow) (float64, error) {
	lo, hi := irrRateMin, irrRateMin+irrSpanStep
	flo := npv(flows, lo)
	for ; hi <= irrRateMax; hi += irrSpanStep {
		fhi := npv(flows, hi)
		if flo*fhi <= 0 && !math.IsNaN(fhi) {
			break
		}
		lo, flo = hi, fhi
	}
	if hi > irrRateMax {
		return 0, ErrNoConvergence
	}

	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fmid := npv(flows, mid)
		if math.Abs(fmid) < irrTol || hi-lo < irrTol {
			return checkRate(mid)
		}
		if flo*fmid <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return checkRate((lo + hi) / 2)
}

func checkRate(r float64) (float64, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= irrRateMin || r >= irrRateMax {
		return 0, ErrNoConvergence
	}
	return r, nil
}

// Annualize converts a per-day compounding rate into an annualized
// percentage: 365 * 100 * (r - 1).
func Annualize(r float64) Percent {
	return Percent(365 * 100 * (r - 1))
}
