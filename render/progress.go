package render

import (
	"fmt"
	"io"
	"log"

	mandel "github.com/marben/distmandel"
)

// Discard ignores all progress.
var Discard mandel.Progress = discard{}

type discard struct{}

func (discard) Diagnostic(string, float64) {}
func (discard) RowDone(int, int)           {}
func (discard) Done()                      {}

// Dots prints a mark every total/Steps rows, the way the classic command line
// renderers did: '.' per hundredth for bitmaps, '*' per tenth for PostScript.
type Dots struct {
	W     io.Writer
	Mark  byte
	Steps int

	started bool
	next    int
	step    int
	inLine  bool
}

// NewDots returns a Dots writing to w.
func NewDots(w io.Writer, mark byte, steps int) *Dots {
	return &Dots{W: w, Mark: mark, Steps: steps}
}

func (d *Dots) Diagnostic(name string, value float64) {
	d.endLine()
	fmt.Fprintf(d.W, "%s = %f\n", name, value)
}

func (d *Dots) RowDone(row, total int) {
	if !d.started {
		d.started = true
		d.step = total / max(d.Steps, 1)
		d.next = d.step
	}
	if row > d.next {
		d.W.Write([]byte{d.Mark})
		d.inLine = true
		d.next += d.step
	}
}

func (d *Dots) Done() {
	d.endLine()
	fmt.Fprint(d.W, "done.\n\n")
}

func (d *Dots) endLine() {
	if d.inLine {
		fmt.Fprintln(d.W)
		d.inLine = false
	}
}

// LogProgress reports through the standard logger, once per finished percent.
type LogProgress struct {
	Prefix string

	lastPct int
}

func (p *LogProgress) Diagnostic(name string, value float64) {
	log.Printf("%s%s: %g", p.Prefix, name, value)
}

func (p *LogProgress) RowDone(row, total int) {
	pct := (row + 1) * 100 / total
	if pct > p.lastPct {
		p.lastPct = pct
		log.Printf("%sfinished: %f", p.Prefix, float32(row+1)/float32(total))
	}
}

func (p *LogProgress) Done() {
	log.Printf("%sdone", p.Prefix)
}
