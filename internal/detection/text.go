package detection

import (
	"image"
	"math"
	"sort"
)

// TextRegion represents a detected text region
type TextRegion struct {
	Bounds     image.Rectangle `json:"bounds"`
	Confidence float64         `json:"confidence"`
	Area       int             `json:"area"`
}

// TextRegionsResult contains detected text regions
type TextRegionsResult struct {
	Regions []TextRegion `json:"regions"`
	Count   int          `json:"count"`
}

// windowSizes are the sliding windows used to look for text of different sizes.
var windowSizes = []struct{ w, h int }{
	{100, 30}, // Small text
	{150, 40}, // Medium text
	{200, 50}, // Large text
	{80, 25},  // Very small text
}

// DetectTextRegions finds regions likely to contain text.
// This is a heuristic-based approach that looks for areas with high edge density
// and the short vertical strokes typical of lettering.
func DetectTextRegions(img image.Image, minConfidence float64) (*TextRegionsResult, error) {
	m := newEdgeMap(img)
	regions := m.textRegions(m.bounds(), minConfidence)

	offset := img.Bounds().Min
	for i := range regions {
		regions[i].Bounds = regions[i].Bounds.Add(offset)
	}

	return &TextRegionsResult{
		Regions: regions,
		Count:   len(regions),
	}, nil
}

// textRegions scans area with every window size and returns the merged
// candidates sorted by confidence.
func (m *edgeMap) textRegions(area image.Rectangle, minConfidence float64) []TextRegion {
	area = area.Intersect(m.bounds())
	candidates := make([]TextRegion, 0)

	for _, ws := range windowSizes {
		stepX := ws.w / 2
		stepY := ws.h / 2

		for y := area.Min.Y; y <= area.Max.Y-ws.h; y += stepY {
			for x := area.Min.X; x <= area.Max.X-ws.w; x += stepX {
				window := image.Rect(x, y, x+ws.w, y+ws.h)
				windowArea := ws.w * ws.h
				density := float64(m.count(window)) / float64(windowArea)

				// Text typically has medium edge density (not too sparse, not too dense)
				if density < 0.05 || density > 0.4 {
					continue
				}

				confidence := m.horizontalScore(window) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence >= minConfidence {
					candidates = append(candidates, TextRegion{
						Bounds:     window,
						Confidence: math.Round(confidence*1000) / 1000,
						Area:       windowArea,
					})
				}
			}
		}
	}

	merged := mergeOverlappingRegions(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// horizontalScore is the share of horizontal edge runs among all runs in r.
// Lettering is made of short vertical strokes, which produce many short
// horizontal runs and few long vertical ones.
func (m *edgeMap) horizontalScore(r image.Rectangle) float64 {
	horizontalRuns := 0
	verticalRuns := 0

	for row := r.Min.Y; row < r.Max.Y; row++ {
		inRun := false
		for col := r.Min.X; col < r.Max.X; col++ {
			if m.at(col, row) {
				if !inRun {
					horizontalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	for col := r.Min.X; col < r.Max.X; col++ {
		inRun := false
		for row := r.Min.Y; row < r.Max.Y; row++ {
			if m.at(col, row) {
				if !inRun {
					verticalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeOverlappingRegions combines overlapping text regions
func mergeOverlappingRegions(regions []TextRegion) []TextRegion {
	if len(regions) == 0 {
		return regions
	}

	merged := make([]TextRegion, 0)

	for _, r := range regions {
		foundMerge := false
		for i := range merged {
			if r.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(r.Bounds)
				merged[i].Confidence = math.Max(r.Confidence, merged[i].Confidence)
				merged[i].Area = merged[i].Bounds.Dx() * merged[i].Bounds.Dy()
				foundMerge = true
				break
			}
		}
		if !foundMerge {
			merged = append(merged, r)
		}
	}

	return merged
}
