package chart

import (
	"math"
	"testing"

	"riskgraph/internal/models"
)

func TestGexNetScenario(t *testing.T) {
	m := NewMapper(5900, 6100, 800)
	gex := models.GexByStrike{6000: {Calls: 500, Puts: 300}}

	bars := BinGex(gex, m, GexModeNet)
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}

	bar := bars[0]
	if bar.Strike != 6000 {
		t.Errorf("strike = %v", bar.Strike)
	}
	if bar.Side != GexSideCall {
		t.Errorf("positive net exposure must be call-colored, got %v", bar.Side)
	}
	// Only strike, so 200 normalizes to full extent.
	if bar.NetExtent != 1 {
		t.Errorf("net extent = %v, want 1", bar.NetExtent)
	}
	if bar.PixelY != m.PriceToPixel(6000) {
		t.Errorf("bar not on the shared axis: %v vs %v", bar.PixelY, m.PriceToPixel(6000))
	}
}

func TestGexNetNegativeSide(t *testing.T) {
	m := NewMapper(5900, 6100, 800)
	gex := models.GexByStrike{6000: {Calls: 100, Puts: 400}}

	bars := BinGex(gex, m, GexModeNet)
	if bars[0].Side != GexSidePut {
		t.Errorf("negative net exposure must be put-colored, got %v", bars[0].Side)
	}
}

func TestGexCombinedNormalization(t *testing.T) {
	m := NewMapper(5900, 6100, 800)
	gex := models.GexByStrike{
		5950: {Calls: 250, Puts: 1000},
		6050: {Calls: 500, Puts: 125},
	}

	bars := BinGex(gex, m, GexModeCombined)
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	// Sorted by strike; extents normalized by max |value| = 1000.
	if math.Abs(bars[0].CallExtent-0.25) > 1e-9 || math.Abs(bars[0].PutExtent-1.0) > 1e-9 {
		t.Errorf("bar 5950 extents = %v/%v", bars[0].CallExtent, bars[0].PutExtent)
	}
	if math.Abs(bars[1].CallExtent-0.5) > 1e-9 || math.Abs(bars[1].PutExtent-0.125) > 1e-9 {
		t.Errorf("bar 6050 extents = %v/%v", bars[1].CallExtent, bars[1].PutExtent)
	}
}

func TestGexEmptyAndOutOfDomain(t *testing.T) {
	m := NewMapper(5900, 6100, 800)

	if bars := BinGex(nil, m, GexModeNet); bars != nil {
		t.Error("empty map should render nothing")
	}
	if bars := BinGex(models.GexByStrike{}, m, GexModeNet); bars != nil {
		t.Error("empty map should render nothing")
	}

	gex := models.GexByStrike{
		7000: {Calls: 500, Puts: 100}, // out of domain
		6000: {Calls: 250, Puts: 100},
	}
	bars := BinGex(gex, m, GexModeNet)
	if len(bars) != 1 || bars[0].Strike != 6000 {
		t.Fatalf("out-of-domain strike must be omitted, got %+v", bars)
	}
	// Normalization still spans all strikes so panning never rescales.
	if math.Abs(bars[0].NetExtent-150.0/400.0) > 1e-9 {
		t.Errorf("extent = %v, want %v", bars[0].NetExtent, 150.0/400.0)
	}
}
