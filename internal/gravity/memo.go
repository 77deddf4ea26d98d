package gravity

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"riskgraph/internal/models"
)

// Compute is the pure batch path: it replays a historical candle
// sequence through a fresh tracker and returns the final band. It is
// equivalent to feeding the same candles through Tracker.Update one at
// a time.
func Compute(tf models.Timeframe, candles []models.Candle) (Band, bool) {
	tracker := NewTracker(tf)
	for _, c := range candles {
		tracker.Update(c)
	}
	return tracker.Value()
}

// memoKey hashes the recompute identity: a band is fully determined by
// the timeframe, the sample count and the last bucket timestamp, since
// committed candles are never retroactively mutated.
func memoKey(tf models.Timeframe, candles []models.Candle) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(tf))

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(len(candles)))
	var last int64
	if len(candles) > 0 {
		last = candles[len(candles)-1].Timestamp.Unix()
	}
	binary.LittleEndian.PutUint64(buf[8:], uint64(last))
	_, _ = d.Write(buf[:])
	return d.Sum64()
}

type memoEntry struct {
	band Band
	ok   bool
}

// Memo is an explicit memoization boundary around Compute. The cache is
// injected state, not hidden in the computation; eviction is FIFO.
type Memo struct {
	capacity int
	entries  map[uint64]memoEntry
	order    []uint64
}

// NewMemo creates a memo cache holding up to capacity results.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		capacity = 64
	}
	return &Memo{
		capacity: capacity,
		entries:  make(map[uint64]memoEntry, capacity),
	}
}

// Compute returns the cached band for this candle history, computing
// and caching it on a miss.
func (m *Memo) Compute(tf models.Timeframe, candles []models.Candle) (Band, bool) {
	key := memoKey(tf, candles)
	if e, hit := m.entries[key]; hit {
		return e.band, e.ok
	}

	band, ok := Compute(tf, candles)
	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = memoEntry{band: band, ok: ok}
	m.order = append(m.order, key)
	return band, ok
}

// Len returns the number of cached results.
func (m *Memo) Len() int { return len(m.entries) }
