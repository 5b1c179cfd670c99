package cli

import (
	"flag"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/encode"
)

// ViewFlags are the optional flags that refine the positional view.
type ViewFlags struct {
	Variant        string
	JuliaX, JuliaY float64
	LegacyGeometry bool
	Format         string
	Zstd           bool
}

func (v *ViewFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&v.Variant, "variant", string(mandel.VariantMandelbrot), "fractal family: mandelbrot or julia")
	fs.Float64Var(&v.JuliaX, "jx", mandel.DefaultJuliaX, "real part of the Julia parameter c")
	fs.Float64Var(&v.JuliaY, "jy", mandel.DefaultJuliaY, "imaginary part of the Julia parameter c")
	fs.BoolVar(&v.LegacyGeometry, "legacy-geometry", false, "reproduce the old PostScript renderer's viewport bounds")
	fs.StringVar(&v.Format, "format", "", "output format: pbm, pgm, ps, png, bmp or tiff (default pbm, pgm for julia)")
	fs.BoolVar(&v.Zstd, "zstd", false, "compress the output with zstd")
}

// Apply copies the flag values into c.
func (v *ViewFlags) Apply(c mandel.ViewConfig) mandel.ViewConfig {
	c.Variant = mandel.Variant(v.Variant)
	if c.Variant == mandel.VariantJulia {
		c.JuliaX, c.JuliaY = v.JuliaX, v.JuliaY
	}
	c.Geometry = mandel.GeometrySymmetric
	if v.LegacyGeometry {
		c.Geometry = mandel.GeometryLegacyPS
	}
	return c
}

// OutputFormat resolves -format, falling back to the default of c's variant.
func (v *ViewFlags) OutputFormat(c mandel.ViewConfig) (encode.Format, error) {
	if v.Format == "" {
		return encode.DefaultFormat(c.Variant), nil
	}
	return encode.ParseFormat(v.Format)
}

// Compression returns the compression method selected by -zstd.
func (v *ViewFlags) Compression() string {
	if v.Zstd {
		return encode.CompressZstd
	}
	return encode.CompressNone
}
