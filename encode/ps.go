package encode

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"

	mandel "github.com/marben/distmandel"
)

const (
	// DPI of the target printer. A NeXT printer would want 400.
	DPI = 300.0

	// HexBytesPerLine keeps image data lines at 70 characters.
	HexBytesPerLine = 35
)

// postScript writes a one bit deep PostScript image. Pixels within Delta of
// the boundary are black (0 bits), the rest white.
type postScript struct {
	bw  *bufio.Writer
	cfg mandel.ViewConfig
	q   mandel.Quantizer

	rows   rowCounter
	packed []byte
	hex    []byte
	onLine int
}

func newPostScript(w io.Writer, cfg mandel.ViewConfig, q mandel.Quantizer) *postScript {
	rowBytes := (cfg.Width + 7) / 8
	return &postScript{
		bw:     bufio.NewWriter(w),
		cfg:    cfg,
		q:      q,
		rows:   rowCounter{width: cfg.Width, height: cfg.Height},
		packed: make([]byte, rowBytes),
	}
}

func (e *postScript) WriteHeader() error {
	w, h := e.cfg.Width, e.cfg.Height
	fmt.Fprintf(e.bw, "/picstr %d string def\n", len(e.packed))
	fmt.Fprintf(e.bw, "10 10 translate \n")
	fmt.Fprintf(e.bw, "%f %f scale\n", float32(float64(w)/DPI*72), float32(float64(h)/DPI*72))
	fmt.Fprintf(e.bw, "%d %d 1 [ %d 0 0 %d 0 0 ]\n", w, h, w, h)
	_, err := fmt.Fprintf(e.bw, "{ currentfile picstr readhexstring pop } image\n")
	return err
}

func (e *postScript) WriteRow(dist []float64) error {
	if err := e.rows.next(dist); err != nil {
		return err
	}
	clear(e.packed)
	for i, d := range dist {
		if !e.q.Near(d) {
			e.packed[i/8] |= 1 << (7 - i%8)
		}
	}

	e.hex = e.hex[:0]
	for _, b := range e.packed {
		if e.onLine == HexBytesPerLine {
			e.hex = append(e.hex, '\n')
			e.onLine = 0
		}
		e.hex = hex.AppendEncode(e.hex, []byte{b})
		e.onLine++
	}
	_, err := e.bw.Write(e.hex)
	return err
}

func (e *postScript) Close() error {
	if err := e.rows.complete(); err != nil {
		return err
	}
	if _, err := e.bw.WriteString("\nshowpage\n"); err != nil {
		return err
	}
	return e.bw.Flush()
}
