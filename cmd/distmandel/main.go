// distmandel renders the boundary of the Mandelbrot set, or of a Julia set,
// with the distance estimator method.
//
//	           x          y      range   W   H  maxiter threshold (in pixels)
//	distmandel -0.800049 -0.167122 0.010537 640 640   256       1        > image.pbm
//
// The image goes to stdout (or -o), progress and diagnostics to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/encode"
	"github.com/marben/distmandel/internal/cli"
	"github.com/marben/distmandel/render"
)

// exitFailure is the status every failure exits with.
const exitFailure = 255

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, cli.ErrUsage) && !errors.Is(err, flag.ErrHelp) {
			log.Printf("distmandel: %v", err)
		}
		os.Exit(exitFailure)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("distmandel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { cli.Usage(fs) }

	var (
		view     cli.ViewFlags
		output   = fs.String("o", "", "write the image to this file instead of stdout")
		workers  = fs.Int("workers", 0, "number of render workers (default GOMAXPROCS)")
		band     = fs.Int("band", render.DefaultBandRows, "rows per unit of work")
		quiet    = fs.Bool("quiet", false, "do not print progress or diagnostics")
		profMode = fs.String("profile", "", "write a cpu, mem or trace profile to the current directory")
	)
	view.Register(fs)

	positional, err := cli.Parse(fs, args)
	if err != nil {
		return err
	}
	cfg, err := cli.ParseView(positional)
	if errors.Is(err, cli.ErrUsage) {
		fs.Usage()
		return err
	}
	if err != nil {
		return err
	}
	cfg = view.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := view.OutputFormat(cfg)
	if err != nil {
		return err
	}

	if *profMode != "" {
		p, err := startProfile(*profMode)
		if err != nil {
			return err
		}
		defer p.Stop()
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	cw, err := encode.Compress(out, view.Compression())
	if err != nil {
		return err
	}
	// ends the compressed stream when rendering fails; the success path closes explicitly
	defer cw.Close()

	vp := mandel.NewViewport(cfg)
	enc, err := encode.New(format, cw, cfg, mandel.NewQuantizer(cfg, vp))
	if err != nil {
		return err
	}

	var progress mandel.Progress = render.Discard
	if !*quiet {
		if format == encode.PS {
			progress = render.NewDots(stderr, '*', 10)
		} else {
			progress = render.NewDots(stderr, '.', 100)
		}
	}

	r := render.Renderer{
		Config:   cfg,
		Workers:  *workers,
		BandRows: *band,
		Progress: progress,
	}
	if err := r.RenderTo(ctx, enc); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func startProfile(mode string) (interface{ Stop() }, error) {
	opts := []func(*profile.Profile){profile.ProfilePath("."), profile.NoShutdownHook}
	switch mode {
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return profile.Start(opts...), nil
}
