package chart

import "riskgraph/internal/models"

// LevelLine is a single structural price mapped to the pixel axis.
type LevelLine struct {
	Price  float64
	PixelY float64
}

// LevelZone is a structural interval mapped to the pixel axis. PixelTop
// corresponds to the higher price of the interval.
type LevelZone struct {
	Start       float64
	End         float64
	PixelTop    float64
	PixelBottom float64
}

// LevelGeometry is the mapped output of all structural layers.
type LevelGeometry struct {
	Nodes     []LevelLine
	Wells     []LevelLine
	Crevasses []LevelZone
}

// MapLevels projects structural levels through the shared mapper.
// Lines and intervals fully outside the visible domain are silently
// omitted; intervals overlapping the edge are kept and clipped by the
// renderer.
func MapLevels(levels models.StructuralLevels, mapper CoordinateMapper) LevelGeometry {
	var geom LevelGeometry

	for _, p := range levels.VolumeNodes {
		if mapper.Contains(p) {
			geom.Nodes = append(geom.Nodes, LevelLine{Price: p, PixelY: mapper.PriceToPixel(p)})
		}
	}
	for _, p := range levels.VolumeWells {
		if mapper.Contains(p) {
			geom.Wells = append(geom.Wells, LevelLine{Price: p, PixelY: mapper.PriceToPixel(p)})
		}
	}
	for _, iv := range levels.Crevasses {
		if iv.End < mapper.PriceMin || iv.Start > mapper.PriceMax {
			continue
		}
		geom.Crevasses = append(geom.Crevasses, LevelZone{
			Start:       iv.Start,
			End:         iv.End,
			PixelTop:    mapper.PriceToPixel(iv.End),
			PixelBottom: mapper.PriceToPixel(iv.Start),
		})
	}
	return geom
}
