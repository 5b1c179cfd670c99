package mandel

import "github.com/go-gl/mathgl/mgl64"

// Viewport maps the pixel grid of a ViewConfig onto a rectangle of the complex plane.
// Pixel (0, 0) maps to Min, pixel (Width-1, Height-1) to Max.
type Viewport struct {
	Min, Max      mgl64.Vec2
	Width, Height int
}

func NewViewport(c ViewConfig) Viewport {
	var halfW, halfH float64
	w, h := float64(c.Width), float64(c.Height)

	center := mgl64.Vec2{c.X, c.Y}
	if c.Geometry == GeometryLegacyPS {
		// height/width is an integer division here, and the half extents
		// are crossed over when building the bounds.
		aspect := float64(c.Height / c.Width)
		if c.Width > c.Height {
			halfW = c.Range / 2
			halfH = c.Range * aspect / 2
		} else {
			halfW = c.Range * aspect / 2
			halfH = c.Range / 2
		}
		return Viewport{
			Min:    center.Sub(mgl64.Vec2{halfW, halfW}),
			Max:    center.Add(mgl64.Vec2{halfH, halfH}),
			Width:  c.Width,
			Height: c.Height,
		}
	}

	if c.Width > c.Height {
		halfW = c.Range / 2
		halfH = c.Range * (h / w) / 2
	} else {
		halfW = c.Range * (w / h) / 2
		halfH = c.Range / 2
	}
	half := mgl64.Vec2{halfW, halfH}
	return Viewport{
		Min:    center.Sub(half),
		Max:    center.Add(half),
		Width:  c.Width,
		Height: c.Height,
	}
}

// X returns the real coordinate of pixel column ix.
func (v Viewport) X(ix int) float64 {
	return lerp(v.Min.X(), v.Max.X(), ix, v.Width)
}

// Y returns the imaginary coordinate of pixel row iy.
func (v Viewport) Y(iy int) float64 {
	return lerp(v.Min.Y(), v.Max.Y(), iy, v.Height)
}

// Point returns the plane coordinate of pixel (ix, iy).
func (v Viewport) Point(ix, iy int) mgl64.Vec2 {
	return mgl64.Vec2{v.X(ix), v.Y(iy)}
}

// PixelSize is the horizontal distance between two neighbouring pixel centers.
func (v Viewport) PixelSize() float64 {
	span := v.Max.X() - v.Min.X()
	if v.Width < 2 {
		return span
	}
	return span / float64(v.Width-1)
}

func lerp(lo, hi float64, i, n int) float64 {
	if n < 2 {
		return lo
	}
	return lo + float64(i)*(hi-lo)/float64(n-1)
}
