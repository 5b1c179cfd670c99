package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/encode"
	"github.com/marben/distmandel/render"
)

var (
	errTooLarge = errors.New("image too large")
	errBusy     = errors.New("server busy")
)

// renderServer runs render requests, at most cap(slots) at a time.
type renderServer struct {
	maxPixels     int
	maxIterations int
	workers       int
	slots         chan struct{}

	active int
	m      sync.Mutex
}

func newRenderServer(maxPixels, maxIterations, maxRenders, workers int) *renderServer {
	return &renderServer{
		maxPixels:     maxPixels,
		maxIterations: maxIterations,
		workers:       workers,
		slots:         make(chan struct{}, max(maxRenders, 1)),
	}
}

// prepare fills in defaults and checks req against the server's limits.
func (rs *renderServer) prepare(req mandel.RenderRequest) (mandel.RenderRequest, encode.Format, error) {
	req.View = req.View.WithDefaults()
	if err := req.View.Validate(); err != nil {
		return req, "", err
	}
	if px := req.View.Width * req.View.Height; px > rs.maxPixels || px/req.View.Width != req.View.Height {
		return req, "", fmt.Errorf("%w: %dx%d is over %d pixels", errTooLarge, req.View.Width, req.View.Height, rs.maxPixels)
	}
	// every worker allocates an orbit of MaxIterations points
	if req.View.MaxIterations > rs.maxIterations {
		return req, "", fmt.Errorf("%w: %d iterations is over %d", errTooLarge, req.View.MaxIterations, rs.maxIterations)
	}

	format := encode.DefaultFormat(req.View.Variant)
	if req.Format != "" {
		var err error
		if format, err = encode.ParseFormat(req.Format); err != nil {
			return req, "", err
		}
	}
	switch req.Compress {
	case encode.CompressNone, encode.CompressZstd:
	default:
		return req, "", fmt.Errorf("unknown compression %q", req.Compress)
	}
	return req, format, nil
}

// acquire waits for a free render slot, giving up when ctx is done.
func (rs *renderServer) acquire(ctx context.Context) error {
	select {
	case rs.slots <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", errBusy, context.Cause(ctx))
	}

	rs.m.Lock()
	rs.active++
	a := rs.active
	rs.m.Unlock()

	log.Printf("renders: %d", a)
	return nil
}

func (rs *renderServer) release() {
	rs.m.Lock()
	rs.active--
	a := rs.active
	rs.m.Unlock()

	<-rs.slots
	log.Printf("renders: %d", a)
}

// render encodes req's image into w.
func (rs *renderServer) render(ctx context.Context, req mandel.RenderRequest, format encode.Format, w io.Writer, progress mandel.Progress) error {
	cw, err := encode.Compress(w, req.Compress)
	if err != nil {
		return err
	}
	vp := mandel.NewViewport(req.View)
	enc, err := encode.New(format, cw, req.View, mandel.NewQuantizer(req.View, vp))
	if err != nil {
		return err
	}

	r := render.Renderer{
		Config:   req.View,
		Workers:  rs.workers,
		Progress: progress,
	}
	if err := r.RenderTo(ctx, enc); err != nil {
		return err
	}
	return cw.Close()
}
