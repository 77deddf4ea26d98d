package payoff

import (
	"math"
	"testing"
	"time"

	"riskgraph/internal/models"
)

var expiry = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

func butterflyLegs(strike, width float64, side models.OptionRight) []models.StrategyLeg {
	return []models.StrategyLeg{
		{Strike: strike - width, Right: side, Quantity: 1, Expiration: expiry},
		{Strike: strike, Right: side, Quantity: -2, Expiration: expiry},
		{Strike: strike + width, Right: side, Quantity: 1, Expiration: expiry},
	}
}

func pnlAt(points []models.CurvePoint, price float64) (float64, bool) {
	for _, pt := range points {
		if pt.Price == price {
			return pt.PnL, true
		}
	}
	return 0, false
}

// Scenario from the strategy editor: butterfly 6000/10 call at a $2.50
// debit pays $750 at the body and loses the debit on both wings.
func TestButterflyExpirationScenario(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	grid := engine.PriceGrid(legs, 6000)
	curve := engine.ExpirationCurve(legs, grid, 2.50)

	cases := []struct {
		price float64
		want  float64
	}{
		{6000, 750},
		{5990, -250},
		{6010, -250},
		{5980, -250},
		{6020, -250},
		{5960, -250},
		{6040, -250},
	}
	for _, tc := range cases {
		got, ok := pnlAt(curve, tc.price)
		if !ok {
			t.Fatalf("grid missing price %v", tc.price)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("P&L(%v) = %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestEmptyLegsFlatCurve(t *testing.T) {
	engine := NewEngine(1, 50)
	res := engine.Compute(nil, 6000, 0, 15, 0.1, SimOffsets{})

	if res.MinPrice != 5950 || res.MaxPrice != 6050 {
		t.Errorf("domain = [%v, %v], want [5950, 6050]", res.MinPrice, res.MaxPrice)
	}
	for _, pt := range res.ExpirationPoints {
		if pt.PnL != 0 {
			t.Fatalf("expected flat zero curve, got %v at %v", pt.PnL, pt.Price)
		}
	}
	if len(res.ExpirationBreakevens) != 0 {
		t.Errorf("flat zero curve must have no breakevens, got %v", res.ExpirationBreakevens)
	}
}

func TestTheoreticalConvergesToExpiration(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	grid := engine.PriceGrid(legs, 6000)

	exp := engine.ExpirationCurve(legs, grid, 2.50)
	theo := engine.TheoreticalCurve(legs, grid, 2.50, 15, 1e-12, SimOffsets{})

	for i := range grid {
		if math.Abs(theo[i].PnL-exp[i].PnL) > 1e-3 {
			t.Fatalf("at price %v: theoretical %v, expiration %v", grid[i], theo[i].PnL, exp[i].PnL)
		}
	}
}

func TestTheoreticalSmoothsWithTime(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	grid := engine.PriceGrid(legs, 6000)

	theo := engine.TheoreticalCurve(legs, grid, 2.50, 15, 5.0/365.0, SimOffsets{})
	body, _ := pnlAt(theo, 6000)
	exp := engine.ExpirationCurve(legs, grid, 2.50)
	bodyExp, _ := pnlAt(exp, 6000)

	// With time value remaining the butterfly body is worth less than
	// its expiration maximum.
	if body >= bodyExp {
		t.Errorf("theoretical body %v should be below expiration body %v", body, bodyExp)
	}
}

func TestSimOffsetsShiftTime(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	grid := engine.PriceGrid(legs, 6000)

	base := engine.TheoreticalCurve(legs, grid, 2.50, 15, 5.0/365.0, SimOffsets{})
	decayed := engine.TheoreticalCurve(legs, grid, 2.50, 15, 5.0/365.0, SimOffsets{TimeShift: 5})
	exp := engine.ExpirationCurve(legs, grid, 2.50)

	// Shifting time all the way to expiry pins the curve to expiration.
	for i := range grid {
		if math.Abs(decayed[i].PnL-exp[i].PnL) > 1e-3 {
			t.Fatalf("time-shifted curve not at expiration at %v", grid[i])
		}
	}

	same := true
	for i := range grid {
		if math.Abs(base[i].PnL-decayed[i].PnL) > 1e-6 {
			same = false
			break
		}
	}
	if same {
		t.Error("time shift had no effect")
	}
}

func TestBreakevensBracketed(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	grid := engine.PriceGrid(legs, 6000)
	curve := engine.ExpirationCurve(legs, grid, 2.50)

	breakevens := Breakevens(curve)
	if len(breakevens) != 2 {
		t.Fatalf("butterfly with debit must have 2 breakevens, got %v", breakevens)
	}

	// K-W+D and K+W-D for a debit butterfly.
	if math.Abs(breakevens[0]-5992.5) > 1e-9 || math.Abs(breakevens[1]-6007.5) > 1e-9 {
		t.Errorf("breakevens = %v, want [5992.5, 6007.5]", breakevens)
	}

	for _, be := range breakevens {
		bracketed := false
		for i := 1; i < len(curve); i++ {
			if curve[i-1].Price <= be && be <= curve[i].Price &&
				(curve[i-1].PnL < 0) != (curve[i].PnL < 0) {
				bracketed = true
				break
			}
		}
		if !bracketed {
			t.Errorf("breakeven %v not bracketed by an opposite-sign pair", be)
		}
	}
}

func TestGridPointsMergeCurves(t *testing.T) {
	engine := NewEngine(1, 50)
	legs := butterflyLegs(6000, 10, models.RightCall)
	res := engine.Compute(legs, 6000, 2.50, 15, 0, SimOffsets{})

	points := res.GridPoints()
	if len(points) != len(res.ExpirationPoints) {
		t.Fatalf("grid points = %d, curves = %d", len(points), len(res.ExpirationPoints))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Price <= points[i-1].Price {
			t.Fatalf("grid not strictly increasing at %d", i)
		}
	}
	// At zero time-to-expiry both series coincide.
	for _, pt := range points {
		if pt.PnLExpiration != pt.PnLTheoretical {
			t.Fatalf("series diverge at %v with t=0", pt.Price)
		}
	}
}

func TestPriceGridStrictlyIncreasing(t *testing.T) {
	engine := NewEngine(1, 50)
	grid := engine.PriceGrid(butterflyLegs(6000, 10, models.RightCall), 6000)
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			t.Fatalf("grid not strictly increasing at %d: %v <= %v", i, grid[i], grid[i-1])
		}
	}
}
