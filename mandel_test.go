package mandel

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	good := ViewConfig{X: -0.8, Y: -0.1671, Range: 0.01, Width: 64, Height: 64, MaxIterations: 256, Threshold: 1}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	tests := []struct {
		name   string
		modify func(*ViewConfig)
	}{
		{"zero width", func(c *ViewConfig) { c.Width = 0 }},
		{"zero height", func(c *ViewConfig) { c.Height = 0 }},
		{"negative range", func(c *ViewConfig) { c.Range = -1 }},
		{"nan range", func(c *ViewConfig) { c.Range = math.NaN() }},
		{"no iterations", func(c *ViewConfig) { c.MaxIterations = 0 }},
		{"zero threshold", func(c *ViewConfig) { c.Threshold = 0 }},
		{"infinite center", func(c *ViewConfig) { c.X = math.Inf(1) }},
		{"unknown variant", func(c *ViewConfig) { c.Variant = "burningship" }},
		{"unknown geometry", func(c *ViewConfig) { c.Geometry = "fisheye" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := good
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	c := ViewConfig{Range: 4, Width: 65, Height: 65, MaxIterations: 10, Threshold: 2}
	vp := NewViewport(c)
	if got := c.Delta(vp); !approx(got, 0.125) {
		t.Errorf("mandelbrot Delta() = %v, want 0.125", got)
	}

	c.Variant = VariantJulia
	if got, want := c.Delta(vp), 2*4.0/65; !approx(got, want) {
		t.Errorf("julia Delta() = %v, want %v", got, want)
	}
}

func TestRegionCenter(t *testing.T) {
	x, y, rng := SeahorseValley.Center()
	if !approx(x, -0.75) || !approx(y, 0.1) || !approx(rng, 0.1) {
		t.Errorf("Center() = %v, %v, %v", x, y, rng)
	}

	r, ok := LookupRegion("Elephant")
	if !ok || r != ElephantValley {
		t.Errorf("LookupRegion(Elephant) = %v, %v", r, ok)
	}
	if _, ok := LookupRegion("nowhere"); ok {
		t.Error("LookupRegion(nowhere) found a region")
	}
}
