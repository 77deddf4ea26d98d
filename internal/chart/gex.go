package chart

import (
	"math"
	"sort"

	"riskgraph/internal/models"
)

// GexMode selects how call/put exposure is rendered per strike.
type GexMode string

const (
	// GexModeCombined renders separate call and put bars extending from
	// a center axis in opposite directions.
	GexModeCombined GexMode = "combined"
	// GexModeNet renders one bar per strike sized by calls-puts, with
	// the sign selecting the call or put color side.
	GexModeNet GexMode = "net"
)

// GexSide identifies the color side of a net bar.
type GexSide string

const (
	GexSideCall GexSide = "call"
	GexSidePut  GexSide = "put"
)

// GexBar is the rendered geometry for one strike. In combined mode
// CallExtent and PutExtent hold normalized magnitudes in [0, 1]; in net
// mode NetExtent holds the normalized magnitude and Side the color.
type GexBar struct {
	Strike     float64
	PixelY     float64
	CallExtent float64
	PutExtent  float64
	NetExtent  float64
	Side       GexSide
}

// BinGex normalizes per-strike exposure into bar geometry. Extents are
// normalized by the maximum absolute value across all strikes, visible
// or not, so panning never rescales bars. Strikes outside the visible
// domain are omitted. An empty map yields no bars.
func BinGex(gex models.GexByStrike, mapper CoordinateMapper, mode GexMode) []GexBar {
	if len(gex) == 0 {
		return nil
	}

	var maxAbs float64
	for _, lvl := range gex {
		switch mode {
		case GexModeNet:
			maxAbs = math.Max(maxAbs, math.Abs(lvl.Calls-lvl.Puts))
		default:
			maxAbs = math.Max(maxAbs, math.Max(math.Abs(lvl.Calls), math.Abs(lvl.Puts)))
		}
	}
	if maxAbs == 0 {
		return nil
	}

	bars := make([]GexBar, 0, len(gex))
	for strike, lvl := range gex {
		if !mapper.Contains(strike) {
			continue
		}
		bar := GexBar{Strike: strike, PixelY: mapper.PriceToPixel(strike)}
		switch mode {
		case GexModeNet:
			net := lvl.Calls - lvl.Puts
			bar.NetExtent = math.Abs(net) / maxAbs
			bar.Side = GexSideCall
			if net < 0 {
				bar.Side = GexSidePut
			}
		default:
			bar.CallExtent = math.Abs(lvl.Calls) / maxAbs
			bar.PutExtent = math.Abs(lvl.Puts) / maxAbs
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Strike < bars[j].Strike })
	return bars
}
