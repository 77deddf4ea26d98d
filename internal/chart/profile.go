package chart

import (
	"math"

	"riskgraph/internal/models"
)

// ProfileOptions control volume-profile re-binning. Exactly one of
// TargetRows or TickPerRow should be set; TargetRows wins when both are.
type ProfileOptions struct {
	TargetRows int
	TickPerRow float64
}

// ProfileBar is one display bin of the re-binned volume profile.
// PixelY is the top of the bar, PixelThickness its height along the
// price axis, Extent its normalized length in [0, 1].
type ProfileBar struct {
	PriceLow       float64
	PriceHigh      float64
	PixelY         float64
	PixelThickness float64
	Volume         float64
	Extent         float64
}

// RebinProfile aggregates a raw volume histogram into display bins that
// cover exactly the visible price range. The transform is
// volume-conserving: every raw bin whose price lies inside the visible
// range lands in exactly one display bin. Empty inputs yield no bars.
func RebinProfile(profile models.VolumeProfile, mapper CoordinateMapper, opts ProfileOptions) []ProfileBar {
	if len(profile.Bins) == 0 || profile.Step <= 0 {
		return nil
	}

	rows := opts.TargetRows
	if rows <= 0 {
		if opts.TickPerRow <= 0 {
			return nil
		}
		rows = int(math.Ceil(mapper.Range() / opts.TickPerRow))
	}
	if rows <= 0 {
		return nil
	}

	rowRange := mapper.Range() / float64(rows)
	volumes := make([]float64, rows)

	for i, vol := range profile.Bins {
		price := profile.Min + (float64(i)+0.5)*profile.Step
		if !mapper.Contains(price) {
			continue
		}
		row := int((price - mapper.PriceMin) / rowRange)
		if row >= rows {
			row = rows - 1 // price == PriceMax lands in the top row
		}
		volumes[row] += vol
	}

	var maxVol float64
	for _, v := range volumes {
		if v > maxVol {
			maxVol = v
		}
	}
	if maxVol == 0 {
		return nil
	}

	// Rows are indexed bottom-up in price; bars render edge to edge.
	thickness := mapper.PixelLength / float64(rows)
	bars := make([]ProfileBar, rows)
	for row := 0; row < rows; row++ {
		low := mapper.PriceMin + float64(row)*rowRange
		high := low + rowRange
		bars[row] = ProfileBar{
			PriceLow:       low,
			PriceHigh:      high,
			PixelY:         mapper.PriceToPixel(high),
			PixelThickness: thickness,
			Volume:         volumes[row],
			Extent:         volumes[row] / maxVol,
		}
	}
	return bars
}
