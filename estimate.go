package mandel

import "math"

const (
	// Huge is returned when a distance cannot be estimated: the point never
	// escaped, its derivative blew up, or the arithmetic went non-finite.
	Huge = math.MaxFloat64

	// EscapeBound is the squared modulus beyond which a Mandelbrot orbit has escaped.
	EscapeBound = 1e5
	// JuliaEscapeBound bounds both |z|² and |z'|² for the Julia estimator.
	JuliaEscapeBound = 1e60
)

// Estimator estimates the distance from a point of the plane to the boundary of a set.
// Implementations may keep per-call scratch state and are not safe for concurrent use;
// create one per goroutine.
type Estimator interface {
	Estimate(x, y float64) float64
}

// NewEstimator returns a fresh estimator for c's variant.
func (c ViewConfig) NewEstimator(vp Viewport) Estimator {
	c = c.WithDefaults()
	if c.Variant == VariantJulia {
		return Julia{Cx: c.JuliaX, Cy: c.JuliaY, MaxIterations: c.MaxIterations}
	}
	return NewMandelbrot(c.MaxIterations, Overflow(c.Delta(vp)))
}

// Overflow is the derivative magnitude past which the Mandelbrot replay gives up.
func Overflow(delta float64) float64 {
	return math.Pow(delta, -2)
}

// Orbit holds the iterates of a single point. Its storage is allocated once
// and reused by Reset.
type Orbit struct {
	xs, ys []float64
}

// NewOrbit returns an empty orbit able to hold capacity iterates without growing.
func NewOrbit(capacity int) *Orbit {
	return &Orbit{
		xs: make([]float64, 0, capacity),
		ys: make([]float64, 0, capacity),
	}
}

// Reset empties the orbit, keeping its storage.
func (o *Orbit) Reset() {
	o.xs = o.xs[:0]
	o.ys = o.ys[:0]
}

// Push appends the iterate x + iy.
func (o *Orbit) Push(x, y float64) {
	o.xs = append(o.xs, x)
	o.ys = append(o.ys, y)
}

// Len is the number of recorded iterates.
func (o *Orbit) Len() int { return len(o.xs) }

// At returns the i-th iterate.
func (o *Orbit) At(i int) (x, y float64) {
	return o.xs[i], o.ys[i]
}

// Mandelbrot estimates distances to the Mandelbrot set. The orbit of each point
// is recorded and the derivative with respect to c is rebuilt from it only
// once the point has escaped.
type Mandelbrot struct {
	MaxIterations int
	Overflow      float64

	orbit *Orbit
}

// NewMandelbrot returns an estimator with its own orbit buffer of maxIterations points.
func NewMandelbrot(maxIterations int, overflow float64) *Mandelbrot {
	return &Mandelbrot{
		MaxIterations: maxIterations,
		Overflow:      overflow,
		orbit:         NewOrbit(maxIterations),
	}
}

func (m *Mandelbrot) Estimate(cx, cy float64) float64 {
	o := m.orbit
	o.Reset()

	var x, y, x2, y2 float64
	for o.Len() < m.MaxIterations && x2+y2 < EscapeBound {
		x, y = x2-y2+cx, 2*x*y+cy
		x2, y2 = x*x, y*y
		o.Push(x, y)
	}
	if !(x2+y2 > EscapeBound) {
		return Huge
	}

	// The last iterate is the escaped one and does not feed the derivative.
	var xder, yder float64
	for i := 0; i < o.Len()-1; i++ {
		ox, oy := o.At(i)
		xder, yder = 2*(ox*xder-oy*yder)+1, 2*(oy*xder+ox*yder)
		if math.Abs(xder) > m.Overflow || math.Abs(yder) > m.Overflow {
			return Huge
		}
	}

	mod := x2 + y2
	return finite(math.Log(mod) * math.Sqrt(mod) / math.Sqrt(xder*xder+yder*yder))
}

// Julia estimates distances to the filled Julia set of z² + c. The derivative
// with respect to the starting point is carried along with z.
//
// Points that never escape are not special-cased: the formula is applied to
// whatever z and z' hold after MaxIterations steps.
type Julia struct {
	Cx, Cy        float64
	MaxIterations int
}

func (j Julia) Estimate(zx, zy float64) float64 {
	x, y := zx, zy
	xp, yp := 1.0, 0.0

	var nz, nzp float64
	for i := 1; i <= j.MaxIterations; i++ {
		xp, yp = 2*(x*xp-y*yp), 2*(x*yp+y*xp)
		x, y = x*x-y*y+j.Cx, 2*x*y+j.Cy

		nz = x*x + y*y
		nzp = xp*xp + yp*yp
		if nzp > JuliaEscapeBound || nz > JuliaEscapeBound {
			break
		}
	}

	a := math.Sqrt(nz)
	return finite(2 * a * math.Log(a) / math.Sqrt(nzp))
}

func finite(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return Huge
	}
	return d
}
