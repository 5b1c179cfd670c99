package encode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	mandel "github.com/marben/distmandel"
)

// TokensPerLine is how many samples a plain PBM/PGM line holds (70 columns at two characters each).
const TokensPerLine = 35

// pnm writes plain (ASCII) PBM or PGM.
type pnm struct {
	bw   *bufio.Writer
	cfg  mandel.ViewConfig
	q    mandel.Quantizer
	gray bool

	rows  rowCounter
	onRow int
	buf   []byte
}

func newPNM(w io.Writer, cfg mandel.ViewConfig, q mandel.Quantizer, gray bool) *pnm {
	return &pnm{
		bw:   bufio.NewWriter(w),
		cfg:  cfg,
		q:    q,
		gray: gray,
		rows: rowCounter{width: cfg.Width, height: cfg.Height},
	}
}

func (e *pnm) WriteHeader() error {
	var err error
	if e.gray {
		_, err = fmt.Fprintf(e.bw, "P2\n%d %d %d\n", e.cfg.Width, e.cfg.Height, mandel.GrayLevels)
	} else {
		_, err = fmt.Fprintf(e.bw, "P1\n%d %d\n", e.cfg.Width, e.cfg.Height)
	}
	return err
}

func (e *pnm) WriteRow(dist []float64) error {
	if err := e.rows.next(dist); err != nil {
		return err
	}
	for _, d := range dist {
		v := e.q.Binary(d)
		if e.gray {
			v = e.q.Gray(d)
		}
		if e.onRow == TokensPerLine {
			e.buf = append(e.buf, '\n')
			e.onRow = 0
		}
		e.buf = strconv.AppendInt(e.buf, int64(v), 10)
		e.buf = append(e.buf, ' ')
		e.onRow++
	}
	_, err := e.bw.Write(e.buf)
	e.buf = e.buf[:0]
	return err
}

func (e *pnm) Close() error {
	if err := e.rows.complete(); err != nil {
		return err
	}
	if err := e.bw.WriteByte('\n'); err != nil {
		return err
	}
	return e.bw.Flush()
}
