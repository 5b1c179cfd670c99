package render

import (
	"context"
	"image"
	"runtime"

	mandel "github.com/marben/distmandel"
	"golang.org/x/sync/errgroup"
)

// DefaultBandRows is the height of a unit of work when Renderer.BandRows is unset.
const DefaultBandRows = 16

// RowFunc receives the distances of one image row. dist is reused after the call returns.
type RowFunc func(row int, dist []float64) error

// Sink is what RenderTo streams rows into. encode.Encoder implements it.
type Sink interface {
	WriteHeader() error
	WriteRow(dist []float64) error
	Close() error
}

// Renderer computes a distance for every pixel of Config. Rows are split into
// bands which are rendered in parallel, and delivered back in raster order.
type Renderer struct {
	Config   mandel.ViewConfig
	Workers  int // defaults to GOMAXPROCS
	BandRows int // defaults to DefaultBandRows
	Progress mandel.Progress
}

func (r *Renderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Renderer) progress() mandel.Progress {
	if r.Progress == nil {
		return Discard
	}
	return r.Progress
}

// RenderTo renders into s, framing the rows with its header and trailer.
func (r *Renderer) RenderTo(ctx context.Context, s Sink) error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	if err := s.WriteHeader(); err != nil {
		return err
	}
	err := r.Render(ctx, func(_ int, dist []float64) error {
		return s.WriteRow(dist)
	})
	if err != nil {
		return err
	}
	return s.Close()
}

// Render calls fn for every row, top to bottom. It stops at the first error
// returned by fn, or when ctx is done.
func (r *Renderer) Render(ctx context.Context, fn RowFunc) error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	cfg := r.Config.WithDefaults()
	vp := mandel.NewViewport(cfg)
	progress := r.progress()
	workers := r.workers()
	bandRows := r.BandRows
	if bandRows < 1 {
		bandRows = DefaultBandRows
	}

	delta := cfg.Delta(vp)
	if cfg.Variant == mandel.VariantMandelbrot {
		progress.Diagnostic("overflow", mandel.Overflow(delta))
	}
	progress.Diagnostic("delta", delta)

	tiles := splitRectNoClip(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Width, bandRows)

	// Every tile gets its own single-slot result channel, so workers never
	// block on delivery and the consumer can wait on tiles in order.
	results := make([]chan []float64, len(tiles))
	for i := range results {
		results[i] = make(chan []float64, 1)
	}
	inFlight := make(chan struct{}, 2*workers)
	buffers := make(chan []float64, 2*workers)
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range tiles {
			select {
			case inFlight <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			est := cfg.NewEstimator(vp)
			for i := range jobs {
				tile := tiles[i]
				var dist []float64
				select {
				case dist = <-buffers:
				default:
					dist = make([]float64, cfg.Width*bandRows)
				}
				dist = dist[:tile.Dx()*tile.Dy()]
				if err := renderTile(ctx, est, vp, tile, dist); err != nil {
					return err
				}
				results[i] <- dist
			}
			return nil
		})
	}

	g.Go(func() error {
		minDist := mandel.Huge
		for i, tile := range tiles {
			var dist []float64
			select {
			case dist = <-results[i]:
			case <-ctx.Done():
				return ctx.Err()
			}

			w := tile.Dx()
			for y := tile.Min.Y; y < tile.Max.Y; y++ {
				off := (y - tile.Min.Y) * w
				row := dist[off : off+w]
				for _, d := range row {
					minDist = min(minDist, d)
				}
				if err := fn(y, row); err != nil {
					return err
				}
				progress.RowDone(y, cfg.Height)
			}

			select {
			case buffers <- dist[:cap(dist)]:
			default:
			}
			<-inFlight
		}
		progress.Diagnostic("mindist", minDist)
		progress.Done()
		return nil
	})

	return g.Wait()
}

// renderTile fills dist with the distances of tile, row by row.
func renderTile(ctx context.Context, est mandel.Estimator, vp mandel.Viewport, tile image.Rectangle, dist []float64) error {
	i := 0
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		y := vp.Y(py)
		for px := tile.Min.X; px < tile.Max.X; px++ {
			dist[i] = est.Estimate(vp.X(px), y)
			i++
		}
	}
	return nil
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
// Tiles are returned in raster order.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)

		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)

			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}

	return tiles
}
