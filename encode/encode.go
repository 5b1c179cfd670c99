// Package encode writes rendered distance rows as image files.
package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	mandel "github.com/marben/distmandel"
)

// Format names an output image format.
type Format string

const (
	PBM  Format = "pbm"
	PGM  Format = "pgm"
	PS   Format = "ps"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ErrUnknownFormat is returned for format names no encoder handles.
var ErrUnknownFormat = errors.New("unknown image format")

var contentTypes = map[Format]string{
	PBM:  "image/x-portable-bitmap",
	PGM:  "image/x-portable-graymap",
	PS:   "application/postscript",
	PNG:  "image/png",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
}

// ParseFormat maps a case-insensitive format name, including the alias "tif", to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "tif" {
		f = TIFF
	}
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// DefaultFormat is the format the classic renderer of each variant produced.
func DefaultFormat(v mandel.Variant) Format {
	if v == mandel.VariantJulia {
		return PGM
	}
	return PBM
}

// ContentType is the MIME type served for images in format f.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Encoder receives the rows of an image top to bottom.
// Close writes the trailer; it does not close the underlying writer.
type Encoder interface {
	WriteHeader() error
	WriteRow(dist []float64) error
	Close() error
}

// New returns an encoder writing cfg's image to w in format f.
func New(f Format, w io.Writer, cfg mandel.ViewConfig, q mandel.Quantizer) (Encoder, error) {
	switch f {
	case PBM:
		return newPNM(w, cfg, q, false), nil
	case PGM:
		return newPNM(w, cfg, q, true), nil
	case PS:
		return newPostScript(w, cfg, q), nil
	case PNG, BMP, TIFF:
		return newRaster(f, w, cfg, q), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// rowCounter checks that an encoder gets exactly one row per image line.
type rowCounter struct {
	width, height int
	rows          int
}

func (c *rowCounter) next(dist []float64) error {
	if len(dist) != c.width {
		return fmt.Errorf("encode: row %d has %d samples, want %d", c.rows, len(dist), c.width)
	}
	if c.rows == c.height {
		return fmt.Errorf("encode: more than %d rows", c.height)
	}
	c.rows++
	return nil
}

func (c *rowCounter) complete() error {
	if c.rows != c.height {
		return fmt.Errorf("encode: got %d of %d rows", c.rows, c.height)
	}
	return nil
}
