// Package payoff computes expiration and theoretical P&L curves for
// multi-leg option strategies.
package payoff

import (
	"math"
	"sort"

	"riskgraph/internal/models"
)

// ContractMultiplier is the index option contract multiplier.
const ContractMultiplier = 100.0

// fallbackHalfRange is the half-width of the price grid used when no
// legs constrain the domain, and of the DegenerateDomain fallback.
const fallbackHalfRange = 50.0

// SimOffsets perturb the effective inputs of the theoretical curve
// without mutating the stored strategy. VolShift is in VIX points,
// TimeShift in days (positive moves toward expiry), SpotShift in price.
type SimOffsets struct {
	VolShift  float64
	TimeShift float64
	SpotShift float64
}

// Result is the full output of one payoff computation.
type Result struct {
	ExpirationPoints      []models.CurvePoint
	TheoreticalPoints     []models.CurvePoint
	MinPrice              float64
	MaxPrice              float64
	MinPnL                float64
	MaxPnL                float64
	ExpirationBreakevens  []float64
	TheoreticalBreakevens []float64
}

// Engine computes payoff curves over a fixed-step price grid.
type Engine struct {
	gridStep   float64
	gridMargin float64
}

// NewEngine creates a payoff engine. gridStep is the price spacing of
// curve samples, gridMargin the padding beyond the outermost strikes.
func NewEngine(gridStep, gridMargin float64) *Engine {
	if gridStep <= 0 {
		gridStep = 1.0
	}
	if gridMargin <= 0 {
		gridMargin = fallbackHalfRange
	}
	return &Engine{gridStep: gridStep, gridMargin: gridMargin}
}

// PriceGrid builds a strictly increasing grid spanning the strategy's
// strikes plus margin, always including the spot neighborhood. With no
// legs it spans [spot-50, spot+50].
func (e *Engine) PriceGrid(legs []models.StrategyLeg, spot float64) []float64 {
	lo := spot - fallbackHalfRange
	hi := spot + fallbackHalfRange
	for _, leg := range legs {
		if leg.Strike-e.gridMargin < lo {
			lo = leg.Strike - e.gridMargin
		}
		if leg.Strike+e.gridMargin > hi {
			hi = leg.Strike + e.gridMargin
		}
	}
	if lo >= hi {
		lo = spot - fallbackHalfRange
		hi = spot + fallbackHalfRange
	}

	n := int(math.Floor((hi-lo)/e.gridStep)) + 1
	grid := make([]float64, 0, n+1)
	for p := lo; p <= hi+e.gridStep/2; p += e.gridStep {
		grid = append(grid, p)
	}
	return grid
}

// ExpirationCurve computes net P&L at expiry for each grid price. The
// debit basis is subtracted once per curve, not per leg.
func (e *Engine) ExpirationCurve(legs []models.StrategyLeg, grid []float64, debit float64) []models.CurvePoint {
	points := make([]models.CurvePoint, len(grid))
	basis := debit * ContractMultiplier
	for i, p := range grid {
		var value float64
		for _, leg := range legs {
			value += float64(leg.Quantity) * intrinsic(leg.Right, leg.Strike, p) * ContractMultiplier
		}
		points[i] = models.CurvePoint{Price: p, PnL: value - basis}
	}
	return points
}

// TheoreticalCurve computes the time-decayed P&L for each grid price.
// As tYears approaches zero it converges pointwise to ExpirationCurve.
func (e *Engine) TheoreticalCurve(legs []models.StrategyLeg, grid []float64, debit, vix, tYears float64, offsets SimOffsets) []models.CurvePoint {
	vol := ivFromVIX(vix + offsets.VolShift)
	t := tYears - offsets.TimeShift/365.0
	if t < 0 {
		t = 0
	}

	points := make([]models.CurvePoint, len(grid))
	basis := debit * ContractMultiplier
	for i, p := range grid {
		eff := p + offsets.SpotShift
		var value float64
		for _, leg := range legs {
			value += float64(leg.Quantity) * blackScholes(leg.Right, eff, leg.Strike, vol, t) * ContractMultiplier
		}
		points[i] = models.CurvePoint{Price: p, PnL: value - basis}
	}
	return points
}

// Compute runs the full payoff pipeline for one strategy's legs.
// An empty leg set yields a flat zero curve over [spot-50, spot+50].
func (e *Engine) Compute(legs []models.StrategyLeg, spot, debit, vix, tYears float64, offsets SimOffsets) Result {
	grid := e.PriceGrid(legs, spot)

	var exp, theo []models.CurvePoint
	if len(legs) == 0 {
		exp = flatCurve(grid)
		theo = flatCurve(grid)
	} else {
		exp = e.ExpirationCurve(legs, grid, debit)
		theo = e.TheoreticalCurve(legs, grid, debit, vix, tYears, offsets)
	}

	res := Result{
		ExpirationPoints:      exp,
		TheoreticalPoints:     theo,
		MinPrice:              grid[0],
		MaxPrice:              grid[len(grid)-1],
		ExpirationBreakevens:  Breakevens(exp),
		TheoreticalBreakevens: Breakevens(theo),
	}

	res.MinPnL, res.MaxPnL = pnlBounds(exp, theo)
	return res
}

// GridPoints merges both curves into per-price grid samples. Price is
// strictly increasing across the result.
func (r Result) GridPoints() []models.PriceGridPoint {
	points := make([]models.PriceGridPoint, len(r.ExpirationPoints))
	for i, pt := range r.ExpirationPoints {
		points[i] = models.PriceGridPoint{
			Price:         pt.Price,
			PnLExpiration: pt.PnL,
		}
		if i < len(r.TheoreticalPoints) {
			points[i].PnLTheoretical = r.TheoreticalPoints[i].PnL
		}
	}
	return points
}

// Breakevens scans adjacent curve samples for sign changes and linearly
// interpolates each zero crossing. Every sign change yields exactly one
// breakeven. A run of exact-zero samples between opposite signs counts
// as a single crossing; an all-zero curve has none.
func Breakevens(points []models.CurvePoint) []float64 {
	sign := func(x float64) int {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	}

	var crossings []float64
	last := 0 // sign of the most recent nonzero sample
	for i, pt := range points {
		s := sign(pt.PnL)
		if s == 0 {
			continue
		}
		if last != 0 && s != last {
			// Walk back to the previous nonzero sample and interpolate
			// across the (possibly zero-length) run between them.
			j := i - 1
			for sign(points[j].PnL) == 0 {
				j--
			}
			prev, cur := points[j], points[i]
			if i-j > 1 {
				// Zero run between opposite signs: the crossing sits on it.
				crossings = append(crossings, points[j+1].Price)
			} else {
				frac := -prev.PnL / (cur.PnL - prev.PnL)
				crossings = append(crossings, prev.Price+frac*(cur.Price-prev.Price))
			}
		}
		last = s
	}
	sort.Float64s(crossings)
	return crossings
}

func flatCurve(grid []float64) []models.CurvePoint {
	points := make([]models.CurvePoint, len(grid))
	for i, p := range grid {
		points[i] = models.CurvePoint{Price: p}
	}
	return points
}

func pnlBounds(curves ...[]models.CurvePoint) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, curve := range curves {
		for _, pt := range curve {
			if pt.PnL < lo {
				lo = pt.PnL
			}
			if pt.PnL > hi {
				hi = pt.PnL
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	return lo, hi
}
