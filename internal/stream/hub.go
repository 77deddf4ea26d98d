package stream

import (
	"context"
	"sync"
	"time"

	"riskgraph/internal/models"
)

// HubConfig holds configuration for the candle hub.
type HubConfig struct {
	// BufferSize is the size of the internal commit channel buffer.
	BufferSize int
	// SubscriberBufferSize is the size of each subscriber's channel buffer.
	SubscriberBufferSize int
}

// DefaultHubConfig returns the default hub configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		BufferSize:           256,
		SubscriberBufferSize: 32,
	}
}

// Hub fans committed candles out to multiple consumers. Ticks from the
// feed are folded through the bucketer exactly once; only candle
// commits cross the hub boundary, as immutable values.
type Hub struct {
	config   HubConfig
	bucketer *Bucketer

	mu          sync.RWMutex
	subscribers []*subscriber
	commitChan  chan models.Candle
	done        chan struct{}
	started     bool

	candlesCommitted uint64
	candlesDropped   uint64
}

type subscriber struct {
	id      string
	channel chan models.Candle
	created time.Time
}

// NewHub creates a hub aggregating ticks at the given timeframe.
func NewHub(tf models.Timeframe) *Hub {
	return NewHubWithConfig(tf, DefaultHubConfig())
}

// NewHubWithConfig creates a hub with custom configuration.
func NewHubWithConfig(tf models.Timeframe, config HubConfig) *Hub {
	return &Hub{
		config:     config,
		bucketer:   NewBucketer(tf),
		commitChan: make(chan models.Candle, config.BufferSize),
		done:       make(chan struct{}),
	}
}

// Start begins the hub's distribution loop.
func (h *Hub) Start(ctx context.Context) {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	go h.broadcastLoop(ctx)
}

// Stop stops the hub and closes all subscriber channels.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return
	}
	close(h.done)
	h.started = false

	for _, sub := range h.subscribers {
		close(sub.channel)
	}
	h.subscribers = nil
}

// HandleTick folds one live tick through the bucketer and publishes the
// resulting commit, if any. Safe to use as a Feed.OnTick handler.
func (h *Hub) HandleTick(tick models.Tick) {
	h.mu.Lock()
	committed, ok := h.bucketer.Apply(tick)
	h.mu.Unlock()
	if ok {
		h.publish(committed)
	}
}

// SwitchTimeframe resets the bucketer for a new timeframe. Consumers
// are expected to run their own full historical recompute.
func (h *Hub) SwitchTimeframe(tf models.Timeframe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bucketer = NewBucketer(tf)
}

// OpenCandle returns a snapshot of the in-progress candle, if any.
func (h *Hub) OpenCandle() (models.Candle, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bucketer.Open()
}

// Subscribe adds a subscriber and returns its commit channel.
func (h *Hub) Subscribe(id string) <-chan models.Candle {
	sub := &subscriber{
		id:      id,
		channel: make(chan models.Candle, h.config.SubscriberBufferSize),
		created: time.Now(),
	}
	h.mu.Lock()
	h.subscribers = append(h.subscribers, sub)
	h.mu.Unlock()
	return sub.channel
}

// Unsubscribe removes a subscriber channel.
func (h *Hub) Unsubscribe(ch <-chan models.Candle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, sub := range h.subscribers {
		if sub.channel == ch {
			close(sub.channel)
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

// Stats returns commit and drop counters.
func (h *Hub) Stats() (committed, dropped uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.candlesCommitted, h.candlesDropped
}

func (h *Hub) publish(c models.Candle) {
	select {
	case h.commitChan <- c:
	default:
		h.mu.Lock()
		h.candlesDropped++
		h.mu.Unlock()
	}
}

func (h *Hub) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case c := <-h.commitChan:
			h.mu.Lock()
			h.candlesCommitted++
			subs := make([]*subscriber, len(h.subscribers))
			copy(subs, h.subscribers)
			h.mu.Unlock()

			for _, sub := range subs {
				select {
				case sub.channel <- c:
				default:
					// Slow consumer; drop rather than block the loop.
				}
			}
		}
	}
}
