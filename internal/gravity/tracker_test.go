package gravity

import (
	"math"
	"testing"
	"time"

	"riskgraph/internal/models"
)

func candlesWithCloses(tf models.Timeframe, closes []float64) []models.Candle {
	base := time.Date(2026, 2, 2, 14, 30, 0, 0, time.UTC)
	step := tf.Duration()
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{
			Timestamp: base.Add(time.Duration(i) * step),
			Open:      c, High: c, Low: c, Close: c,
		}
	}
	return out
}

func TestWindowSizes(t *testing.T) {
	cases := []struct {
		tf     models.Timeframe
		window int
		min    int
	}{
		{models.Timeframe5m, 30, 15},
		{models.Timeframe15m, 24, 12},
		{models.Timeframe1h, 20, 10},
	}
	for _, tc := range cases {
		if got := WindowSize(tc.tf); got != tc.window {
			t.Errorf("%s: window = %d, want %d", tc.tf, got, tc.window)
		}
		if got := MinSamples(WindowSize(tc.tf)); got != tc.min {
			t.Errorf("%s: min samples = %d, want %d", tc.tf, got, tc.min)
		}
	}
}

func TestMinSamplesFloor(t *testing.T) {
	// Small windows still require at least 8 samples.
	if got := MinSamples(10); got != 8 {
		t.Errorf("MinSamples(10) = %d, want 8", got)
	}
}

func TestConstantClosesScenario(t *testing.T) {
	tracker := NewTracker(models.Timeframe5m)
	for _, c := range candlesWithCloses(models.Timeframe5m, constant(100, 30)) {
		tracker.Update(c)
	}

	band, ok := tracker.Value()
	if !ok {
		t.Fatal("full window must emit a value")
	}
	if band.Best != 100 {
		t.Errorf("best = %v, want 100", band.Best)
	}
	if band.High != 100 || band.Low != 100 {
		t.Errorf("zero stdev must collapse the band: high %v low %v", band.High, band.Low)
	}
	if band.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", band.Confidence)
	}
}

func TestSuppressionBelowMinimum(t *testing.T) {
	tracker := NewTracker(models.Timeframe5m)
	for _, c := range candlesWithCloses(models.Timeframe5m, constant(100, 14)) {
		tracker.Update(c)
	}
	if _, ok := tracker.Value(); ok {
		t.Error("14 of 15 required samples must suppress emission")
	}

	tracker.Update(models.Candle{Timestamp: time.Now().UTC(), Close: 100})
	if _, ok := tracker.Value(); !ok {
		t.Error("15th sample must start emission")
	}
}

func TestWindowEviction(t *testing.T) {
	tracker := NewTracker(models.Timeframe1h)

	// 20 closes at 50, then 20 closes at 200: the first batch must be
	// fully evicted.
	closes := append(constant(50, 20), constant(200, 20)...)
	for _, c := range candlesWithCloses(models.Timeframe1h, closes) {
		tracker.Update(c)
	}

	band, ok := tracker.Value()
	if !ok {
		t.Fatal("expected emission")
	}
	if band.Best != 200 {
		t.Errorf("best = %v, want 200 after eviction", band.Best)
	}
	if tracker.Count() != 20 {
		t.Errorf("window holds %d, want 20", tracker.Count())
	}
}

func TestCloudDirection(t *testing.T) {
	tf := models.Timeframe1h

	// Rising last close above the mean: gravity pulls down.
	closes := append(constant(100, 19), 120)
	tracker := NewTracker(tf)
	for _, c := range candlesWithCloses(tf, closes) {
		tracker.Update(c)
	}
	band, _ := tracker.Value()
	if band.Cloud >= band.Best {
		t.Errorf("close above best must offset the cloud down: cloud %v best %v", band.Cloud, band.Best)
	}
	wantOffset := band.Best - 0.6*(band.High-band.Low)
	if math.Abs(band.Cloud-wantOffset) > 1e-9 {
		t.Errorf("cloud = %v, want %v", band.Cloud, wantOffset)
	}

	// Falling last close: gravity pulls up.
	closes = append(constant(100, 19), 80)
	tracker = NewTracker(tf)
	for _, c := range candlesWithCloses(tf, closes) {
		tracker.Update(c)
	}
	band, _ = tracker.Value()
	if band.Cloud <= band.Best {
		t.Errorf("close below best must offset the cloud up: cloud %v best %v", band.Cloud, band.Best)
	}
}

func TestResetClearsState(t *testing.T) {
	tracker := NewTracker(models.Timeframe5m)
	for _, c := range candlesWithCloses(models.Timeframe5m, constant(100, 30)) {
		tracker.Update(c)
	}
	tracker.Reset()

	if tracker.Count() != 0 {
		t.Errorf("count after reset = %d", tracker.Count())
	}
	if _, ok := tracker.Value(); ok {
		t.Error("reset tracker must not emit")
	}
}

func TestConfidenceScalesWithDispersion(t *testing.T) {
	tf := models.Timeframe1h

	tight := NewTracker(tf)
	for _, c := range candlesWithCloses(tf, alternating(1000, 0.5, 20)) {
		tight.Update(c)
	}
	loose := NewTracker(tf)
	for _, c := range candlesWithCloses(tf, alternating(1000, 30, 20)) {
		loose.Update(c)
	}

	tb, _ := tight.Value()
	lb, _ := loose.Value()
	if tb.Confidence <= lb.Confidence {
		t.Errorf("tighter window must be more confident: %v vs %v", tb.Confidence, lb.Confidence)
	}
	if lb.Confidence != 0 {
		t.Errorf("high relative dispersion must clamp to 0, got %v", lb.Confidence)
	}
}

func constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func alternating(center, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = center + amplitude
		} else {
			out[i] = center - amplitude
		}
	}
	return out
}
