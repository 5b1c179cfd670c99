package render

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestDots(t *testing.T) {
	var buf bytes.Buffer
	d := NewDots(&buf, '.', 100)
	d.Diagnostic("delta", 0.5)
	for row := range 250 {
		d.RowDone(row, 250)
	}
	d.Diagnostic("mindist", 0.25)
	d.Done()

	want := "delta = 0.500000\n" +
		strings.Repeat(".", 124) + "\n" +
		"mindist = 0.250000\n" +
		"done.\n\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDotsFewRows(t *testing.T) {
	var buf bytes.Buffer
	d := NewDots(&buf, '*', 100)
	for row := range 50 {
		d.RowDone(row, 50)
	}
	d.Done()
	if want := strings.Repeat("*", 49) + "\ndone.\n\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestDotsTenths(t *testing.T) {
	var buf bytes.Buffer
	d := NewDots(&buf, '*', 10)
	for row := range 100 {
		d.RowDone(row, 100)
	}
	if got := strings.Count(buf.String(), "*"); got != 9 {
		t.Errorf("printed %d marks, want 9", got)
	}
}

func TestLogProgress(t *testing.T) {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	p := &LogProgress{Prefix: "test "}
	for row := range 250 {
		p.RowDone(row, 250)
	}
	p.Done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 101 {
		t.Fatalf("logged %d lines, want 101", len(lines))
	}
	if lines[0] != "test finished: 0.012000" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[100] != "test done" {
		t.Errorf("last line = %q", lines[100])
	}
}
