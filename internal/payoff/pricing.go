package payoff

import (
	"math"

	"riskgraph/internal/models"
)

// minTimeYears is the cutoff below which an option is priced at
// intrinsic value, avoiding 0/0 in d1 and pinning the theoretical curve
// to the expiration curve at expiry.
const minTimeYears = 1e-9

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// intrinsic returns the expiration value of one contract at price p.
func intrinsic(right models.OptionRight, strike, p float64) float64 {
	if right == models.RightCall {
		return math.Max(0, p-strike)
	}
	return math.Max(0, strike-p)
}

// blackScholes prices one option contract with zero rate and flat
// volatility. As tYears approaches zero the price converges to the
// intrinsic value, which is what keeps the theoretical curve pinned to
// the expiration curve at expiry.
func blackScholes(right models.OptionRight, spot, strike, vol, tYears float64) float64 {
	if tYears < minTimeYears {
		return intrinsic(right, strike, spot)
	}
	if vol <= 0 {
		return intrinsic(right, strike, spot)
	}
	if spot <= 0 || strike <= 0 {
		return intrinsic(right, strike, spot)
	}

	sqrtT := math.Sqrt(tYears)
	d1 := (math.Log(spot/strike) + 0.5*vol*vol*tYears) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	if right == models.RightCall {
		return spot*normCDF(d1) - strike*normCDF(d2)
	}
	return strike*normCDF(-d2) - spot*normCDF(-d1)
}

// ivFromVIX converts a VIX-style quote (annualized percent) into the
// flat implied volatility used for theoretical pricing.
func ivFromVIX(vix float64) float64 {
	if vix <= 0 {
		return 0
	}
	return vix / 100.0
}
