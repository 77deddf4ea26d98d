// Package stream handles the live tick channel: websocket ingestion,
// time-bucket aggregation into candles, and fan-out to consumers.
package stream

import (
	"time"

	"riskgraph/internal/models"
)

// Bucketer aggregates live ticks into per-timeframe OHLC candles. It is
// a two-state machine: no open candle, or one open candle at a bucket
// start. Committed candles are never retroactively mutated; ticks older
// than the open bucket are dropped silently.
type Bucketer struct {
	timeframe     models.Timeframe
	bucketSeconds int64
	open          models.Candle
	hasOpen       bool
}

// NewBucketer creates a bucketer for the given timeframe.
func NewBucketer(tf models.Timeframe) *Bucketer {
	return &Bucketer{
		timeframe:     tf,
		bucketSeconds: tf.BucketSeconds(),
	}
}

// Timeframe returns the active timeframe.
func (b *Bucketer) Timeframe() models.Timeframe { return b.timeframe }

// Open returns a snapshot of the currently open candle, if any.
func (b *Bucketer) Open() (models.Candle, bool) {
	return b.open, b.hasOpen
}

// Reset clears all state, as on a timeframe switch.
func (b *Bucketer) Reset() {
	b.open = models.Candle{}
	b.hasOpen = false
}

// BucketStart floors a timestamp to its bucket start.
func (b *Bucketer) BucketStart(ts time.Time) time.Time {
	return time.Unix(ts.Unix()/b.bucketSeconds*b.bucketSeconds, 0).UTC()
}

// Apply folds one tick into the state machine. When the tick opens a
// newer bucket, the previously open candle is returned as committed.
func (b *Bucketer) Apply(tick models.Tick) (committed models.Candle, ok bool) {
	start := b.BucketStart(tick.Timestamp)

	if !b.hasOpen {
		b.openCandle(start, tick)
		return models.Candle{}, false
	}

	switch {
	case start.After(b.open.Timestamp):
		committed = b.open
		b.openCandle(start, tick)
		return committed, true
	case start.Equal(b.open.Timestamp):
		if tick.Price > b.open.High {
			b.open.High = tick.Price
		}
		if tick.Price < b.open.Low {
			b.open.Low = tick.Price
		}
		b.open.Close = tick.Price
		b.open.Volume += tick.Size
		return models.Candle{}, false
	default:
		// Out-of-order tick for an already-committed bucket.
		return models.Candle{}, false
	}
}

func (b *Bucketer) openCandle(start time.Time, tick models.Tick) {
	b.open = models.Candle{
		Timestamp: start,
		Open:      tick.Price,
		High:      tick.Price,
		Low:       tick.Price,
		Close:     tick.Price,
		Volume:    tick.Size,
	}
	b.hasOpen = true
}
