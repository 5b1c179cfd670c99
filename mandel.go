package mandel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig is wrapped by every ViewConfig validation failure.
var ErrInvalidConfig = errors.New("invalid view config")

// Variant selects which family of the quadratic map is rendered.
type Variant string

const (
	// VariantMandelbrot varies the parameter c per pixel, z starts at 0.
	VariantMandelbrot Variant = "mandelbrot"
	// VariantJulia fixes c for the whole image and starts z at the pixel coordinate.
	VariantJulia Variant = "julia"
)

// Geometry selects how the viewport bounds are derived from center and range.
type Geometry string

const (
	GeometrySymmetric Geometry = "symmetric"
	// GeometryLegacyPS mirrors the bounds of the old PostScript renderer,
	// including its integer aspect ratio and swapped half extents.
	GeometryLegacyPS Geometry = "legacy-ps"
)

// Default Julia parameter, used when none is given.
const (
	DefaultJuliaX = 0.301813
	DefaultJuliaY = -0.022009
)

// ViewConfig describes one render. It is created once per run and never modified.
type ViewConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Range float64 `json:"range"` // width of the view in plane units

	Width  int `json:"width"`
	Height int `json:"height"`

	MaxIterations int     `json:"maxIterations"`
	Threshold     float64 `json:"threshold"` // in pixels

	Variant  Variant  `json:"variant,omitempty"`
	JuliaX   float64  `json:"juliaX,omitempty"`
	JuliaY   float64  `json:"juliaY,omitempty"`
	Geometry Geometry `json:"geometry,omitempty"`
}

// WithDefaults fills in the optional fields left empty.
func (c ViewConfig) WithDefaults() ViewConfig {
	if c.Variant == "" {
		c.Variant = VariantMandelbrot
	}
	if c.Geometry == "" {
		c.Geometry = GeometrySymmetric
	}
	return c
}

// Validate reports the first field of c that cannot be rendered, wrapping ErrInvalidConfig.
func (c ViewConfig) Validate() error {
	c = c.WithDefaults()
	switch {
	case c.Width < 1:
		return fmt.Errorf("%w: width %d < 1", ErrInvalidConfig, c.Width)
	case c.Height < 1:
		return fmt.Errorf("%w: height %d < 1", ErrInvalidConfig, c.Height)
	case !(c.Range > 0) || math.IsInf(c.Range, 0):
		return fmt.Errorf("%w: range %v must be positive", ErrInvalidConfig, c.Range)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: maxIterations %d < 1", ErrInvalidConfig, c.MaxIterations)
	case !(c.Threshold > 0) || math.IsInf(c.Threshold, 0):
		return fmt.Errorf("%w: threshold %v must be positive", ErrInvalidConfig, c.Threshold)
	case math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0):
		return fmt.Errorf("%w: center (%v, %v) is not finite", ErrInvalidConfig, c.X, c.Y)
	}
	switch c.Variant {
	case VariantMandelbrot, VariantJulia:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	switch c.Geometry {
	case GeometrySymmetric, GeometryLegacyPS:
	default:
		return fmt.Errorf("%w: unknown geometry %q", ErrInvalidConfig, c.Geometry)
	}
	return nil
}

// Delta is the distance below which a pixel counts as lying on the boundary.
// The Mandelbrot renderers measure it in pixel steps of the mapped bounds,
// the Julia renderer in range/width.
func (c ViewConfig) Delta(vp Viewport) float64 {
	if c.WithDefaults().Variant == VariantJulia {
		return c.Threshold * c.Range / float64(c.Width)
	}
	return c.Threshold * vp.PixelSize()
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the middle of the region and the larger of its two extents,
// which is what a ViewConfig wants as X, Y and Range.
func (r Region) Center() (x, y, rng float64) {
	x = (r.Xmin + r.Xmax) / 2
	y = (r.Ymin + r.Ymax) / 2
	rng = math.Max(r.Xmax-r.Xmin, r.Ymax-r.Ymin)
	return x, y, rng
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var regions = map[string]Region{
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}

// LookupRegion finds a landmark by its short name (seahorse, elephant, spiral, triple, dragon, minibrot).
func LookupRegion(name string) (Region, bool) {
	r, ok := regions[strings.ToLower(name)]
	return r, ok
}
