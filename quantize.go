package mandel

import "math"

// GrayLevels is the number of intensity steps a threshold is divided into.
const GrayLevels = 256

// Quantizer turns estimated distances into output samples.
type Quantizer struct {
	Delta     float64 // boundary distance, plane units
	Threshold float64 // same threshold expressed in pixels
}

// NewQuantizer returns the quantizer matching c.
func NewQuantizer(c ViewConfig, vp Viewport) Quantizer {
	return Quantizer{Delta: c.Delta(vp), Threshold: c.Threshold}
}

// Near reports whether d lies within Delta of the boundary.
// Huge is never near, whatever Delta is.
func (q Quantizer) Near(d float64) bool {
	return d != Huge && d < q.Delta
}

// Binary returns 1 for boundary pixels and 0 for everything else.
func (q Quantizer) Binary(d float64) int {
	if q.Near(d) {
		return 1
	}
	return 0
}

// Gray scales boundary distances into [0, GrayLevels-1]; pixels away from the boundary are 0.
func (q Quantizer) Gray(d float64) int {
	if !q.Near(d) {
		return 0
	}
	v := math.Floor(d / (q.Threshold / GrayLevels))
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > GrayLevels-1:
		return GrayLevels - 1
	}
	return int(v)
}
