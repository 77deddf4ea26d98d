package view

import "riskgraph/internal/models"

// SeriesKind names a payoff series exposed to the presentation layer.
type SeriesKind string

const (
	// SeriesExpiration is the at-expiry payoff curve.
	SeriesExpiration SeriesKind = "Expiration"
	// SeriesCurrent is the time-decayed theoretical curve.
	SeriesCurrent SeriesKind = "Current"
)

// SeriesStyle carries presentation hints. The core never interprets it.
type SeriesStyle struct {
	Color     string
	LineWidth int
	Dashed    bool
}

// SeriesHandle receives plain numeric point sequences. Computation
// modules never hold renderer-owned objects; this handle is the only
// crossing point between the core and the charting library.
type SeriesHandle interface {
	SetPoints(points []models.CurvePoint)
	Clear()
}

// Renderer is implemented by the presentation layer.
type Renderer interface {
	RegisterSeries(kind SeriesKind, style SeriesStyle) SeriesHandle
}

// NopRenderer discards all series updates. Used headless and in tests.
type NopRenderer struct{}

type nopHandle struct{}

func (nopHandle) SetPoints([]models.CurvePoint) {}
func (nopHandle) Clear()                        {}

// RegisterSeries returns a handle that drops everything.
func (NopRenderer) RegisterSeries(SeriesKind, SeriesStyle) SeriesHandle { return nopHandle{} }

// CaptureRenderer records the latest points per series. Used in tests
// and by the CLI dump commands.
type CaptureRenderer struct {
	Series map[SeriesKind][]models.CurvePoint
}

// NewCaptureRenderer creates an empty capture renderer.
func NewCaptureRenderer() *CaptureRenderer {
	return &CaptureRenderer{Series: make(map[SeriesKind][]models.CurvePoint)}
}

type captureHandle struct {
	r    *CaptureRenderer
	kind SeriesKind
}

func (h captureHandle) SetPoints(points []models.CurvePoint) {
	h.r.Series[h.kind] = points
}

func (h captureHandle) Clear() {
	delete(h.r.Series, h.kind)
}

// RegisterSeries returns a capturing handle for the kind.
func (r *CaptureRenderer) RegisterSeries(kind SeriesKind, _ SeriesStyle) SeriesHandle {
	return captureHandle{r: r, kind: kind}
}
