package encode

import (
	"fmt"
	"image"
	"image/png"
	"io"

	mandel "github.com/marben/distmandel"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	rasterInk   = 0x00
	rasterPaper = 0xff
)

// raster collects the whole image in memory and encodes it on Close.
// Boundary pixels are black on white.
type raster struct {
	format Format
	w      io.Writer
	q      mandel.Quantizer
	img    *image.Gray

	rows rowCounter
}

func newRaster(f Format, w io.Writer, cfg mandel.ViewConfig, q mandel.Quantizer) *raster {
	return &raster{
		format: f,
		w:      w,
		q:      q,
		img:    image.NewGray(image.Rect(0, 0, cfg.Width, cfg.Height)),
		rows:   rowCounter{width: cfg.Width, height: cfg.Height},
	}
}

func (e *raster) WriteHeader() error { return nil }

func (e *raster) WriteRow(dist []float64) error {
	y := e.rows.rows
	if err := e.rows.next(dist); err != nil {
		return err
	}
	pix := e.img.Pix[y*e.img.Stride:]
	for x, d := range dist {
		if e.q.Near(d) {
			pix[x] = rasterInk
		} else {
			pix[x] = rasterPaper
		}
	}
	return nil
}

func (e *raster) Close() error {
	if err := e.rows.complete(); err != nil {
		return err
	}
	var err error
	switch e.format {
	case PNG:
		err = png.Encode(e.w, e.img)
	case BMP:
		err = bmp.Encode(e.w, e.img)
	case TIFF:
		err = tiff.Encode(e.w, e.img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, e.format)
	}
	if err != nil {
		return fmt.Errorf("%s encode: %w", e.format, err)
	}
	return nil
}
