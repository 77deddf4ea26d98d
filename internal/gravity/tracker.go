// Package gravity computes rolling-statistics bands ("gravity") over
// committed candle closes.
package gravity

import (
	"math"
	"time"

	"riskgraph/internal/models"
)

// cloudFactor scales the directional offset of the gravity cloud.
const cloudFactor = 0.6

// relDispersionFull is the relative dispersion at which confidence
// reaches zero; below it confidence scales linearly toward one.
const relDispersionFull = 0.02

// Band is one emitted gravity value. Cloud is the directionally offset
// center: below Best when price sits above the band, above it otherwise.
type Band struct {
	Time       time.Time
	Best       float64
	High       float64
	Low        float64
	Confidence float64
	Cloud      float64
}

// Sample converts the band into the externally shared shape.
func (b Band) Sample() models.GravitySample {
	return models.GravitySample{
		Time:       b.Time,
		Best:       b.Best,
		High:       b.High,
		Low:        b.Low,
		Confidence: b.Confidence,
	}
}

// WindowSize returns the rolling window length for a timeframe.
func WindowSize(tf models.Timeframe) int {
	switch tf {
	case models.Timeframe15m:
		return 24
	case models.Timeframe1h:
		return 20
	default:
		return 30
	}
}

// MinSamples returns the minimum window fill before a value is emitted.
func MinSamples(window int) int {
	half := window / 2
	if half < 8 {
		return 8
	}
	return half
}

// Tracker maintains a sliding window of the last N closes for one
// timeframe. It is owned by a single component; there are no concurrent
// writers. Feeding candles one at a time or recomputing from scratch
// over the same sequence yields identical values.
type Tracker struct {
	timeframe  models.Timeframe
	window     int
	minSamples int
	closes     []float64
	lastTime   time.Time
	lastClose  float64
}

// NewTracker creates a tracker for the given timeframe.
func NewTracker(tf models.Timeframe) *Tracker {
	window := WindowSize(tf)
	return &Tracker{
		timeframe:  tf,
		window:     window,
		minSamples: MinSamples(window),
		closes:     make([]float64, 0, window),
	}
}

// Timeframe returns the tracker's timeframe.
func (t *Tracker) Timeframe() models.Timeframe { return t.timeframe }

// Count returns the number of closes currently in the window.
func (t *Tracker) Count() int { return len(t.closes) }

// LastTime returns the bucket time of the most recent close.
func (t *Tracker) LastTime() time.Time { return t.lastTime }

// Reset clears all window state, as on a timeframe switch.
func (t *Tracker) Reset() {
	t.closes = t.closes[:0]
	t.lastTime = time.Time{}
	t.lastClose = 0
}

// Update appends one committed bucket close, evicting the oldest sample
// beyond the window length.
func (t *Tracker) Update(c models.Candle) {
	t.closes = append(t.closes, c.Close)
	if len(t.closes) > t.window {
		t.closes = t.closes[1:]
	}
	t.lastTime = c.Timestamp
	t.lastClose = c.Close
}

// Ready reports whether enough samples are present to emit a value.
func (t *Tracker) Ready() bool {
	return len(t.closes) >= t.minSamples
}

// Value computes the current band. The second return is false while the
// window holds fewer than the minimum samples; that is suppression, not
// an error.
func (t *Tracker) Value() (Band, bool) {
	if !t.Ready() {
		return Band{}, false
	}

	m := mean(t.closes)
	sd := sampleStdev(t.closes, m)

	band := Band{
		Time:       t.lastTime,
		Best:       m,
		High:       m + sd,
		Low:        m - sd,
		Confidence: confidence(m, sd),
	}

	spread := band.High - band.Low
	if t.lastClose > band.Best {
		band.Cloud = band.Best - cloudFactor*spread
	} else {
		band.Cloud = band.Best + cloudFactor*spread
	}
	return band, true
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStdev(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func confidence(m, sd float64) float64 {
	if sd == 0 {
		return 1
	}
	if m == 0 {
		return 0
	}
	c := 1 - (sd/math.Abs(m))/relDispersionFull
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
