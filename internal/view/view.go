// Package view orchestrates the risk-graph core: it owns the strategy
// set, the market snapshot, the chart domain and the gravity state, and
// recomputes derived outputs synchronously on each discrete event.
package view

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"riskgraph/internal/chart"
	"riskgraph/internal/gravity"
	"riskgraph/internal/models"
	"riskgraph/internal/payoff"
	"riskgraph/internal/store"
	"riskgraph/internal/strategy"
)

// Config holds view construction parameters.
type Config struct {
	Symbol       string
	Timeframe    models.Timeframe
	GexMode      chart.GexMode
	ProfileRows  int
	GridStep     float64
	GridMargin   float64
	HistoryLimit int
	MemoSize     int
}

// Backdrops is the rendered geometry of every backdrop layer, all
// derived from the same CoordinateMapper value.
type Backdrops struct {
	Mapper  chart.CoordinateMapper
	Profile []chart.ProfileBar
	Gex     []chart.GexBar
	Levels  chart.LevelGeometry
}

// View is the single owner of all mutable core state. All methods run
// synchronously to completion; execution is single-threaded cooperative
// and a superseded computation is simply overwritten by the next one.
type View struct {
	cfg    Config
	logger zerolog.Logger

	engine  *payoff.Engine
	candles store.CandleStore

	strategies map[string]models.Strategy
	legs       map[string][]models.StrategyLeg

	quote   models.Quote
	offsets payoff.SimOffsets

	mapper  chart.CoordinateMapper
	profile models.VolumeProfile
	gex     models.GexByStrike
	levels  models.StructuralLevels

	tracker *gravity.Tracker
	memo    *gravity.Memo
	history []models.Candle

	renderer   Renderer
	expiration SeriesHandle
	current    SeriesHandle

	payoffResult payoff.Result
	band         gravity.Band
	hasBand      bool
	backdrops    Backdrops
}

// New creates a view bound to a renderer and candle store.
func New(cfg Config, candles store.CandleStore, renderer Renderer, logger zerolog.Logger) *View {
	if !cfg.Timeframe.Valid() {
		cfg.Timeframe = models.Timeframe5m
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 200
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}

	v := &View{
		cfg:        cfg,
		logger:     logger.With().Str("component", "view").Logger(),
		engine:     payoff.NewEngine(cfg.GridStep, cfg.GridMargin),
		candles:    candles,
		strategies: make(map[string]models.Strategy),
		legs:       make(map[string][]models.StrategyLeg),
		tracker:    gravity.NewTracker(cfg.Timeframe),
		memo:       gravity.NewMemo(cfg.MemoSize),
		renderer:   renderer,
	}
	v.expiration = renderer.RegisterSeries(SeriesExpiration, SeriesStyle{Color: "#2962ff", LineWidth: 2})
	v.current = renderer.RegisterSeries(SeriesCurrent, SeriesStyle{Color: "#ff9800", LineWidth: 2, Dashed: true})
	return v
}

// Timeframe returns the active timeframe.
func (v *View) Timeframe() models.Timeframe { return v.cfg.Timeframe }

// UpsertStrategy validates and stores a strategy descriptor, then
// recomputes the payoff curves. Validation failures block the save and
// are the only errors surfaced interactively.
func (v *View) UpsertStrategy(s models.Strategy) error {
	legs, err := strategy.Build(s)
	if err != nil {
		return err
	}
	if err := strategy.Validate(s, legs); err != nil {
		return err
	}

	v.strategies[s.ID] = s
	v.legs[s.ID] = legs
	v.recomputePayoff()
	return nil
}

// RemoveStrategy deletes a strategy and recomputes.
func (v *View) RemoveStrategy(id string) {
	delete(v.strategies, id)
	delete(v.legs, id)
	v.recomputePayoff()
}

// SetQuote updates the market snapshot and recomputes.
func (v *View) SetQuote(q models.Quote) {
	v.quote = q
	v.recomputePayoff()
}

// SetOffsets updates the simulation offsets and recomputes. Stored
// strategies are never mutated by simulation.
func (v *View) SetOffsets(o payoff.SimOffsets) {
	v.offsets = o
	v.recomputePayoff()
}

// Payoff returns the latest payoff computation.
func (v *View) Payoff() payoff.Result { return v.payoffResult }

// SetDomain rebuilds the shared coordinate mapper and re-renders every
// backdrop layer from it. Called on zoom, pan and resize.
func (v *View) SetDomain(priceMin, priceMax, pixelLength float64) Backdrops {
	v.mapper = chart.NewMapper(priceMin, priceMax, pixelLength)
	v.renderBackdrops()
	return v.backdrops
}

// SetBackdropData replaces the raw backdrop inputs and re-renders them
// in the current domain. Missing or empty inputs render as absent
// layers, never as errors.
func (v *View) SetBackdropData(profile models.VolumeProfile, gex models.GexByStrike, levels models.StructuralLevels) Backdrops {
	v.profile = profile
	v.gex = gex
	v.levels = levels
	v.renderBackdrops()
	return v.backdrops
}

// Backdrops returns the latest backdrop geometry.
func (v *View) Backdrops() Backdrops { return v.backdrops }

// SwitchTimeframe resets all bucketing and gravity state and runs a
// full historical recompute from the candle store. There is no
// cross-timeframe carryover.
func (v *View) SwitchTimeframe(ctx context.Context, tf models.Timeframe) error {
	if !tf.Valid() {
		tf = models.Timeframe5m
	}
	v.cfg.Timeframe = tf
	v.tracker = gravity.NewTracker(tf)
	v.history = nil
	v.hasBand = false

	if v.candles == nil {
		return nil
	}
	history, err := v.candles.History(ctx, v.cfg.Symbol, tf, v.cfg.HistoryLimit)
	if err != nil {
		v.logger.Warn().Err(err).Str("timeframe", string(tf)).Msg("historical recompute failed, starting cold")
		return err
	}
	v.seedHistory(history)
	return nil
}

// seedHistory replays historical candles through both the memoized
// batch path and the incremental tracker so subsequent live updates
// continue from identical state.
func (v *View) seedHistory(history []models.Candle) {
	v.history = history
	for _, c := range history {
		v.tracker.Update(c)
	}
	if band, ok := v.memo.Compute(v.cfg.Timeframe, history); ok {
		v.band = band
		v.hasBand = true
	}
}

// OnCandle folds one committed candle into the gravity state and
// persists it. Called for each candle the stream hub commits.
func (v *View) OnCandle(ctx context.Context, c models.Candle) {
	v.tracker.Update(c)
	v.history = append(v.history, c)
	if len(v.history) > v.cfg.HistoryLimit {
		v.history = v.history[1:]
	}

	if band, ok := v.tracker.Value(); ok {
		v.band = band
		v.hasBand = true
	}

	if v.candles != nil {
		if err := v.candles.SaveCandles(ctx, v.cfg.Symbol, v.cfg.Timeframe, []models.Candle{c}); err != nil {
			v.logger.Warn().Err(err).Msg("failed to persist committed candle")
		}
	}
}

// Gravity returns the latest band. The second return is false while the
// rolling window is below its minimum fill.
func (v *View) Gravity() (gravity.Band, bool) {
	return v.band, v.hasBand
}

// recomputePayoff rebuilds the combined payoff curves over all visible
// strategies and pushes them through the series handles.
func (v *View) recomputePayoff() {
	var legs []models.StrategyLeg
	var debit float64
	minDTE := -1

	ids := make([]string, 0, len(v.strategies))
	for id := range v.strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s := v.strategies[id]
		if !s.Visible {
			continue
		}
		legs = append(legs, v.legs[id]...)
		debit += s.Debit
		if minDTE < 0 || s.DTE < minDTE {
			minDTE = s.DTE
		}
	}

	tYears := 0.0
	if minDTE > 0 {
		tYears = float64(minDTE) / 365.0
	}

	v.payoffResult = v.engine.Compute(legs, v.quote.Spot, debit, v.quote.VIX, tYears, v.offsets)
	v.expiration.SetPoints(v.payoffResult.ExpirationPoints)
	v.current.SetPoints(v.payoffResult.TheoreticalPoints)
}

// renderBackdrops recomputes every backdrop layer from the single
// shared mapper. Layers never patch prior state.
func (v *View) renderBackdrops() {
	v.backdrops = Backdrops{
		Mapper:  v.mapper,
		Profile: chart.RebinProfile(v.profile, v.mapper, chart.ProfileOptions{TargetRows: v.cfg.ProfileRows}),
		Gex:     chart.BinGex(v.gex, v.mapper, v.cfg.GexMode),
		Levels:  chart.MapLevels(v.levels, v.mapper),
	}
}
