package models

// PriceGridPoint is one sample of a payoff curve. Price is strictly
// increasing across a grid.
type PriceGridPoint struct {
	Price          float64
	PnLExpiration  float64
	PnLTheoretical float64
}

// CurvePoint is a single [price, pnl] sample of a named payoff series.
type CurvePoint struct {
	Price float64
	PnL   float64
}

// VolumeProfile is a histogram of traded volume across price levels.
// Bin i covers prices [Min + i*Step, Min + (i+1)*Step).
type VolumeProfile struct {
	Min  float64
	Step float64
	Bins []float64
}

// GexLevel holds signed call and put gamma exposure at one strike.
type GexLevel struct {
	Calls float64
	Puts  float64
}

// GexByStrike maps strike price to exposure magnitudes.
type GexByStrike map[float64]GexLevel

// PriceInterval is a half-open structural zone [Start, End], Start <= End.
type PriceInterval struct {
	Start float64
	End   float64
}

// StructuralLevels holds market-structure prices rendered behind the
// primary chart.
type StructuralLevels struct {
	VolumeNodes []float64
	VolumeWells []float64
	Crevasses   []PriceInterval
}
