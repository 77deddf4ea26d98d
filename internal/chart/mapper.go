// Package chart provides the shared price-axis geometry and the backdrop
// layer aggregation (volume profile, gamma exposure, structural levels).
//
// Every layer is computed from the same CoordinateMapper value. No layer
// derives its own scale, which is what keeps independently rendered
// layers pixel-exact under pan, zoom and resize.
package chart

// fallbackHalfRange is the half-width of the domain substituted when the
// requested price range collapses.
const fallbackHalfRange = 50.0

// CoordinateMapper is a pure, stateless bidirectional price to pixel
// transform. Price increases toward pixel 0 (screen top).
type CoordinateMapper struct {
	PriceMin    float64
	PriceMax    float64
	PixelLength float64
}

// NewMapper builds a mapper for the given visible domain. A degenerate
// domain (min >= max) falls back to a fixed window around the midpoint.
func NewMapper(priceMin, priceMax, pixelLength float64) CoordinateMapper {
	if priceMin >= priceMax {
		mid := priceMin
		priceMin = mid - fallbackHalfRange
		priceMax = mid + fallbackHalfRange
	}
	if pixelLength <= 0 {
		pixelLength = 1
	}
	return CoordinateMapper{PriceMin: priceMin, PriceMax: priceMax, PixelLength: pixelLength}
}

// PriceToPixel maps a price to its pixel offset from the top of the axis.
func (m CoordinateMapper) PriceToPixel(price float64) float64 {
	return m.PixelLength * (m.PriceMax - price) / (m.PriceMax - m.PriceMin)
}

// PixelToPrice maps a pixel offset back to a price. It is the exact
// inverse of PriceToPixel over the domain.
func (m CoordinateMapper) PixelToPrice(pixel float64) float64 {
	return m.PriceMax - pixel*(m.PriceMax-m.PriceMin)/m.PixelLength
}

// Contains reports whether price lies inside the visible domain.
func (m CoordinateMapper) Contains(price float64) bool {
	return price >= m.PriceMin && price <= m.PriceMax
}

// Range returns the visible price range.
func (m CoordinateMapper) Range() float64 {
	return m.PriceMax - m.PriceMin
}
