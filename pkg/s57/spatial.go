package s57

import "github.com/dhconnelly/rtreego"

// spatialIndex provides O(log n) viewport queries over a chart's features
// using an R-tree, dramatically faster than a linear scan for a chart with
// many thousand features.
//
// Grounded on the teacher's pkg/s57/s57.go spatialIndex/indexedFeature/
// buildSpatialIndex, narrowed from a multi-chart directory index to a
// single chart's already-resolved Feature slice.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedFeature wraps a Feature for R-tree storage.
type indexedFeature struct {
	feature Feature
	bounds  Bounds
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	point := rtreego.Point{f.bounds.MinLon, f.bounds.MinLat}

	lonLength := f.bounds.MaxLon - f.bounds.MinLon
	latLength := f.bounds.MaxLat - f.bounds.MinLat

	// R-tree rectangles must have non-zero extent; give point features
	// (zero-area bounds) a small footprint (~11m at the equator).
	const epsilon = 0.0001
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

func (idx *spatialIndex) query(bounds Bounds) []Feature {
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	spatials := idx.rtree.SearchIntersect(queryRect)
	result := make([]Feature, 0, len(spatials))
	for _, sp := range spatials {
		result = append(result, sp.(*indexedFeature).feature)
	}
	return result
}

// buildSpatialIndex inserts every feature into a fresh R-tree and computes
// the chart's overall bounds, preferring an M_COVR (Meta Coverage) feature's
// extent over the union of every feature's bounds when one is present.
func buildSpatialIndex(features []Feature) (*spatialIndex, Bounds) {
	if len(features) == 0 {
		return nil, Bounds{}
	}

	rtree := rtreego.NewTree(2, 25, 50)
	var chartBounds *Bounds
	var covrBounds *Bounds

	for _, feature := range features {
		fb := featureBounds(feature)
		rtree.Insert(&indexedFeature{feature: feature, bounds: fb})

		if feature.ObjectClass() == "M_COVR" {
			covrBounds = unionBounds(covrBounds, fb)
		}
		chartBounds = unionBounds(chartBounds, fb)
	}

	if covrBounds != nil {
		chartBounds = covrBounds
	}

	idx := &spatialIndex{rtree: rtree}
	if chartBounds == nil {
		return idx, Bounds{}
	}
	return idx, *chartBounds
}

func unionBounds(acc *Bounds, next Bounds) *Bounds {
	if acc == nil {
		b := next
		return &b
	}
	if next.MinLon < acc.MinLon {
		acc.MinLon = next.MinLon
	}
	if next.MaxLon > acc.MaxLon {
		acc.MaxLon = next.MaxLon
	}
	if next.MinLat < acc.MinLat {
		acc.MinLat = next.MinLat
	}
	if next.MaxLat > acc.MaxLat {
		acc.MaxLat = next.MaxLat
	}
	return acc
}
