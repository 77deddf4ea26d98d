// Package store provides candle-history persistence used to seed full
// recomputes on startup and timeframe switches.
package store

import (
	"context"
	"time"

	"riskgraph/internal/models"
)

// CandleStore defines the interface for candle-history persistence.
// Strategies and trades are owned by external services and are never
// stored here.
type CandleStore interface {
	SaveCandles(ctx context.Context, symbol string, tf models.Timeframe, candles []models.Candle) error
	GetCandles(ctx context.Context, symbol string, tf models.Timeframe, from, to time.Time) ([]models.Candle, error)
	// History returns the most recent limit candles in ascending time order.
	History(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]models.Candle, error)
	Close() error
}
