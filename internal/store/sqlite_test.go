package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"riskgraph/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "candles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testCandles(n int) []models.Candle {
	base := time.Date(2026, 2, 2, 14, 30, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		price := 6000 + float64(i)
		out[i] = models.Candle{
			Timestamp: base.Add(time.Duration(i) * 5 * time.Minute),
			Open:      price, High: price + 2, Low: price - 2, Close: price + 1,
			Volume: int64(100 + i),
		}
	}
	return out
}

func TestSaveAndGetCandles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	candles := testCandles(10)

	require.NoError(t, s.SaveCandles(ctx, "SPX", models.Timeframe5m, candles))

	got, err := s.GetCandles(ctx, "SPX", models.Timeframe5m, candles[0].Timestamp, candles[9].Timestamp)
	require.NoError(t, err)
	require.Len(t, got, 10)
	require.Equal(t, candles[0].Open, got[0].Open)
	require.True(t, got[0].Timestamp.Equal(candles[0].Timestamp))
}

func TestHistoryReturnsAscendingTail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	candles := testCandles(30)

	require.NoError(t, s.SaveCandles(ctx, "SPX", models.Timeframe5m, candles))

	got, err := s.History(ctx, "SPX", models.Timeframe5m, 10)
	require.NoError(t, err)
	require.Len(t, got, 10)
	require.True(t, got[0].Timestamp.Equal(candles[20].Timestamp), "history must be the most recent candles")
	for i := 1; i < len(got); i++ {
		require.True(t, got[i].Timestamp.After(got[i-1].Timestamp), "history must ascend")
	}
}

func TestUpsertReplacesBucket(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	candles := testCandles(1)

	require.NoError(t, s.SaveCandles(ctx, "SPX", models.Timeframe5m, candles))

	candles[0].Close = 7777
	require.NoError(t, s.SaveCandles(ctx, "SPX", models.Timeframe5m, candles))

	got, err := s.History(ctx, "SPX", models.Timeframe5m, 5)
	require.NoError(t, err)
	require.Len(t, got, 1, "same bucket must be replaced, not duplicated")
	require.Equal(t, 7777.0, got[0].Close)
}

func TestTimeframesIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCandles(ctx, "SPX", models.Timeframe5m, testCandles(5)))

	got, err := s.History(ctx, "SPX", models.Timeframe1h, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEmptySaveIsNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveCandles(context.Background(), "SPX", models.Timeframe5m, nil))
}
