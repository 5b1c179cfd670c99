package cli

import (
	"errors"
	"flag"
	"io"
	"slices"
	"strconv"
	"testing"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/encode"
)

func TestParseView(t *testing.T) {
	c, err := ParseView([]string{"-0.8", "-0.1671", "0.01", "64", "48", "256", "1", "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	want := mandel.ViewConfig{X: -0.8, Y: -0.1671, Range: 0.01, Width: 64, Height: 48, MaxIterations: 256, Threshold: 1}
	if c != want {
		t.Errorf("ParseView() = %+v, want %+v", c, want)
	}
}

func TestParseViewTooFew(t *testing.T) {
	if _, err := ParseView([]string{"0", "0", "1", "10", "10", "50"}); !errors.Is(err, ErrUsage) {
		t.Errorf("ParseView() = %v, want ErrUsage", err)
	}
}

func TestParseViewBadArgument(t *testing.T) {
	tests := []struct {
		args  []string
		index int
		label string
	}{
		{[]string{"0", "abc", "1", "10", "10", "50", "1"}, 2, "y"},
		{[]string{"0", "0", "1", "10.5", "10", "50", "1"}, 4, "width"},
		{[]string{"0", "0", "1", "10", "10", "50", "x"}, 7, "threshold"},
	}
	for _, tt := range tests {
		_, err := ParseView(tt.args)
		var ae *ArgError
		if !errors.As(err, &ae) {
			t.Errorf("ParseView(%q) = %v, want *ArgError", tt.args, err)
			continue
		}
		if ae.Index != tt.index || ae.Label != tt.label {
			t.Errorf("ParseView(%q) error at %d %q, want %d %q", tt.args, ae.Index, ae.Label, tt.index, tt.label)
		}
		if !errors.As(err, new(*strconv.NumError)) {
			t.Errorf("ParseView(%q) = %v, want a wrapped *strconv.NumError", tt.args, err)
		}
	}
}

func newFlagSet() (*flag.FlagSet, *ViewFlags, *string) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var v ViewFlags
	v.Register(fs)
	out := fs.String("o", "", "")
	return fs, &v, out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		pos  []string
		out  string
		zstd bool
	}{
		{"no flags", []string{"-0.8", "0.1"}, []string{"-0.8", "0.1"}, "", false},
		{"value flag", []string{"-o", "x.pbm", "-0.8", "-1"}, []string{"-0.8", "-1"}, "x.pbm", false},
		{"bool flag", []string{"-zstd", "-0.8"}, []string{"-0.8"}, "", true},
		{"equals", []string{"--o=y.pbm", "1"}, []string{"1"}, "y.pbm", false},
		{"terminator", []string{"-zstd", "--", "-o"}, []string{"-o"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, v, out := newFlagSet()
			pos, err := Parse(fs, tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(pos, tt.pos) {
				t.Errorf("positionals = %q, want %q", pos, tt.pos)
			}
			if *out != tt.out {
				t.Errorf("-o = %q, want %q", *out, tt.out)
			}
			if v.Zstd != tt.zstd {
				t.Errorf("-zstd = %v, want %v", v.Zstd, tt.zstd)
			}
		})
	}
}

func TestParseUnknownFlag(t *testing.T) {
	fs, _, _ := newFlagSet()
	if _, err := Parse(fs, []string{"-nope", "1"}); err == nil {
		t.Error("Parse accepted an unknown flag")
	}
}

func TestViewFlags(t *testing.T) {
	fs, v, _ := newFlagSet()
	if _, err := Parse(fs, []string{"-variant", "julia", "-jx", "0.3", "-legacy-geometry", "-format", "ps", "0"}); err != nil {
		t.Fatal(err)
	}
	c := v.Apply(mandel.ViewConfig{})
	if c.Variant != mandel.VariantJulia || c.JuliaX != 0.3 || c.JuliaY != mandel.DefaultJuliaY {
		t.Errorf("Apply() = %+v", c)
	}
	if c.Geometry != mandel.GeometryLegacyPS {
		t.Errorf("Geometry = %q", c.Geometry)
	}
	if f, err := v.OutputFormat(c); err != nil || f != encode.PS {
		t.Errorf("OutputFormat() = %q, %v", f, err)
	}
	if m := v.Compression(); m != encode.CompressNone {
		t.Errorf("Compression() = %q", m)
	}
}

func TestViewFlagsDefaults(t *testing.T) {
	fs, v, _ := newFlagSet()
	if _, err := Parse(fs, nil); err != nil {
		t.Fatal(err)
	}
	c := v.Apply(mandel.ViewConfig{})
	if c.Variant != mandel.VariantMandelbrot || c.JuliaX != 0 || c.Geometry != mandel.GeometrySymmetric {
		t.Errorf("Apply() = %+v", c)
	}
	if f, _ := v.OutputFormat(c); f != encode.PBM {
		t.Errorf("OutputFormat() = %q, want pbm", f)
	}
}
