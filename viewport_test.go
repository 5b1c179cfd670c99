package mandel

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestViewportEdges(t *testing.T) {
	tests := []struct {
		name         string
		cfg          ViewConfig
		halfW, halfH float64
	}{
		{"wide", ViewConfig{X: -0.8, Y: -0.1671, Range: 0.01, Width: 64, Height: 48}, 0.005, 0.00375},
		{"tall", ViewConfig{X: -0.8, Y: -0.1671, Range: 0.01, Width: 48, Height: 64}, 0.00375, 0.005},
		{"square", ViewConfig{X: 0.25, Y: 0.5, Range: 2, Width: 100, Height: 100}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(tt.cfg)
			w, h := tt.cfg.Width, tt.cfg.Height

			if got, want := vp.X(0), tt.cfg.X-tt.halfW; !approx(got, want) {
				t.Errorf("X(0) = %v, want %v", got, want)
			}
			if got, want := vp.X(w-1), tt.cfg.X+tt.halfW; !approx(got, want) {
				t.Errorf("X(%d) = %v, want %v", w-1, got, want)
			}
			if got, want := vp.Y(0), tt.cfg.Y-tt.halfH; !approx(got, want) {
				t.Errorf("Y(0) = %v, want %v", got, want)
			}
			if got, want := vp.Y(h-1), tt.cfg.Y+tt.halfH; !approx(got, want) {
				t.Errorf("Y(%d) = %v, want %v", h-1, got, want)
			}

			p := vp.Point(w-1, 0)
			if !approx(p.X(), vp.Max.X()) || !approx(p.Y(), vp.Min.Y()) {
				t.Errorf("Point(%d, 0) = %v, want (%v, %v)", w-1, p, vp.Max.X(), vp.Min.Y())
			}
		})
	}
}

func TestViewportSquareUsesSameExtent(t *testing.T) {
	vp := NewViewport(ViewConfig{X: -0.5, Y: 0, Range: 3, Width: 65, Height: 65})
	dx := vp.Max.X() - vp.Min.X()
	dy := vp.Max.Y() - vp.Min.Y()
	if !approx(dx, 3) || !approx(dy, 3) {
		t.Fatalf("extents = %v x %v, want 3 x 3", dx, dy)
	}
	if !approx(vp.PixelSize(), 3.0/64) {
		t.Errorf("PixelSize() = %v, want %v", vp.PixelSize(), 3.0/64)
	}
}

func TestViewportSinglePixel(t *testing.T) {
	vp := NewViewport(ViewConfig{X: 1, Y: 2, Range: 4, Width: 1, Height: 1})
	if got := vp.X(0); got != vp.Min.X() {
		t.Errorf("X(0) = %v, want min %v", got, vp.Min.X())
	}
	if got := vp.Y(0); got != vp.Min.Y() {
		t.Errorf("Y(0) = %v, want min %v", got, vp.Min.Y())
	}
	if math.IsInf(vp.PixelSize(), 0) || math.IsNaN(vp.PixelSize()) {
		t.Errorf("PixelSize() = %v, want finite", vp.PixelSize())
	}
}

func TestViewportLegacyGeometry(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		min, max [2]float64
	}{
		// 480/640 is 0 in integer arithmetic, so the vertical half extent vanishes
		// and ends up as the upper bound of both axes.
		{"wide", 640, 480, [2]float64{-0.5, -0.5}, [2]float64{0, 0}},
		{"tall", 480, 640, [2]float64{-0.5, -0.5}, [2]float64{0.5, 0.5}},
		{"square", 64, 64, [2]float64{-0.5, -0.5}, [2]float64{0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(ViewConfig{Range: 1, Width: tt.w, Height: tt.h, Geometry: GeometryLegacyPS})
			if vp.Min.X() != tt.min[0] || vp.Min.Y() != tt.min[1] {
				t.Errorf("Min = %v, want %v", vp.Min, tt.min)
			}
			if vp.Max.X() != tt.max[0] || vp.Max.Y() != tt.max[1] {
				t.Errorf("Max = %v, want %v", vp.Max, tt.max)
			}
		})
	}
}
