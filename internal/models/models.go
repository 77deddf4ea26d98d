// Package models provides domain models for the risk-graph core.
package models

import "time"

// Timeframe identifies a candle aggregation interval.
type Timeframe string

const (
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
)

// BucketSeconds returns the bucket length of the timeframe in seconds.
func (tf Timeframe) BucketSeconds() int64 {
	switch tf {
	case Timeframe5m:
		return 300
	case Timeframe15m:
		return 900
	case Timeframe1h:
		return 3600
	default:
		return 300
	}
}

// Duration returns the bucket length as a time.Duration.
func (tf Timeframe) Duration() time.Duration {
	return time.Duration(tf.BucketSeconds()) * time.Second
}

// Valid reports whether the timeframe is a supported interval.
func (tf Timeframe) Valid() bool {
	switch tf {
	case Timeframe5m, Timeframe15m, Timeframe1h:
		return true
	}
	return false
}

// Candle represents one OHLC bucket. Timestamp is the bucket start and is
// always an exact multiple of the timeframe's bucket length.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Tick represents one real-time price observation from the live feed.
type Tick struct {
	Symbol    string
	Price     float64
	Size      int64
	Timestamp time.Time
}

// Quote is a point-in-time snapshot of the underlying used to seed payoff
// computation.
type Quote struct {
	Symbol string
	Spot   float64
	VIX    float64
	AsOf   time.Time
}

// GravitySample is one emitted rolling-statistics band value. Derived
// data, recomputed on demand, never persisted.
type GravitySample struct {
	Time       time.Time
	Best       float64
	High       float64
	Low        float64
	Confidence float64
}
