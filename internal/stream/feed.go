package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	rerrors "riskgraph/internal/errors"
	"riskgraph/internal/models"
)

// FeedConfig holds configuration for the live tick feed.
type FeedConfig struct {
	URL            string
	Symbol         string
	ReconnectDelay time.Duration
}

// wireTick is the on-the-wire tick shape pushed by the feed.
type wireTick struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Size      int64   `json:"size"`
	Timestamp int64   `json:"ts"` // unix seconds
}

// Feed is a websocket client for the live tick channel. Each tick is
// delivered at most once; a dropped connection is retried with a fixed
// backoff delay and bucketing resumes without replaying missed ticks.
type Feed struct {
	config FeedConfig

	onTick       func(models.Tick)
	onError      func(error)
	onConnect    func()
	onDisconnect func()

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	done      chan struct{}
	started   bool
}

// NewFeed creates a feed client for the configured channel.
func NewFeed(cfg FeedConfig) *Feed {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	return &Feed{
		config: cfg,
		done:   make(chan struct{}),
	}
}

// OnTick registers the tick handler.
func (f *Feed) OnTick(fn func(models.Tick)) { f.onTick = fn }

// OnError registers the error handler.
func (f *Feed) OnError(fn func(error)) { f.onError = fn }

// OnConnect registers the connect handler.
func (f *Feed) OnConnect(fn func()) { f.onConnect = fn }

// OnDisconnect registers the disconnect handler.
func (f *Feed) OnDisconnect(fn func()) { f.onDisconnect = fn }

// Connected reports the current connection state. The presentation
// layer surfaces this as a passive status affordance.
func (f *Feed) Connected() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.connected
}

// Start connects and runs the read loop until the context is cancelled
// or Stop is called. Reconnection uses the fixed configured delay.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return nil
	}
	f.started = true
	f.mu.Unlock()

	go f.run(ctx)
	return nil
}

// Stop closes the feed.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return
	}
	f.started = false
	close(f.done)
	if f.conn != nil {
		f.conn.Close()
	}
}

func (f *Feed) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.done:
			return
		default:
		}

		if err := f.connect(ctx); err != nil {
			f.emitError(rerrors.NewFeedError(f.config.URL, "connect", err))
			if !f.waitBackoff(ctx) {
				return
			}
			continue
		}

		f.readLoop(ctx)

		// Connection lost; back off and reconnect. Missed ticks are
		// tolerated, not backfilled.
		if !f.waitBackoff(ctx) {
			return
		}
	}
}

func (f *Feed) connect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, f.config.URL, nil)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.conn = conn
	f.connected = true
	f.mu.Unlock()

	if f.onConnect != nil {
		f.onConnect()
	}
	return nil
}

func (f *Feed) readLoop(ctx context.Context) {
	defer func() {
		f.mu.Lock()
		if f.conn != nil {
			f.conn.Close()
			f.conn = nil
		}
		wasConnected := f.connected
		f.connected = false
		f.mu.Unlock()

		if wasConnected && f.onDisconnect != nil {
			f.onDisconnect()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.done:
			return
		default:
		}

		_, data, err := f.conn.ReadMessage()
		if err != nil {
			f.emitError(rerrors.NewFeedError(f.config.URL, "read", err))
			return
		}

		var wt wireTick
		if err := json.Unmarshal(data, &wt); err != nil {
			f.emitError(rerrors.NewFeedError(f.config.URL, "decode", err))
			continue
		}
		if f.config.Symbol != "" && wt.Symbol != f.config.Symbol {
			continue
		}

		if f.onTick != nil {
			f.onTick(models.Tick{
				Symbol:    wt.Symbol,
				Price:     wt.Price,
				Size:      wt.Size,
				Timestamp: time.Unix(wt.Timestamp, 0).UTC(),
			})
		}
	}
}

func (f *Feed) waitBackoff(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-f.done:
		return false
	case <-time.After(f.config.ReconnectDelay):
		return true
	}
}

func (f *Feed) emitError(err error) {
	if f.onError != nil {
		f.onError(err)
	}
}
