package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/encode"
	"github.com/marben/distmandel/render"
)

// webServer creates the http server with the /render and /ws endpoints.
func webServer(addr string, rs *renderServer) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", renderHandler(rs))
	mux.HandleFunc("/ws", websocketHandler(rs))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// renderErrorTrailer carries the reason a /render response body was cut short.
const renderErrorTrailer = "X-Render-Error"

// renderHandler streams the requested image as the response body. The status
// is sent before rendering starts, so a render that fails midway still ends
// with 200; clients detect it by a non-empty X-Render-Error trailer.
func renderHandler(rs *renderServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := requestFromQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req, format, err := rs.prepare(req)
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
		if err := rs.acquire(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		defer rs.release()

		w.Header().Set("Trailer", renderErrorTrailer)
		w.Header().Set("Content-Type", format.ContentType())
		if req.Compress != encode.CompressNone {
			w.Header().Set("Content-Encoding", req.Compress)
		}

		progress := &render.LogProgress{Prefix: r.RemoteAddr + " "}
		if err := rs.render(r.Context(), req, format, w, progress); err != nil {
			// the status line is already out, all we can do is cut the body short
			log.Printf("render for %s failed: %v", r.RemoteAddr, err)
			w.Header().Set(renderErrorTrailer, err.Error())
		}
	}
}

// websocketHandler reads one RenderRequest, answers with RowProgress text
// messages while rendering and finally with the image as a binary message.
func websocketHandler(rs *renderServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ctx, cancel := context.WithCancelCause(r.Context())
		defer cancel(nil)

		var req mandel.RenderRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			log.Printf("read request from %s: %v", r.RemoteAddr, err)
			return
		}
		req, format, err := rs.prepare(req)
		if err != nil {
			c.Close(websocket.StatusPolicyViolation, closeReason(err))
			return
		}
		if err := rs.acquire(ctx); err != nil {
			c.Close(websocket.StatusTryAgainLater, closeReason(err))
			return
		}
		defer rs.release()

		// The image is buffered: progress messages cannot be interleaved with
		// an open binary message.
		var img bytes.Buffer
		progress := &wsProgress{ctx: ctx, conn: c, cancel: cancel}
		if err := rs.render(ctx, req, format, &img, progress); err != nil {
			if cause := context.Cause(ctx); cause != nil {
				err = cause
			}
			log.Printf("render for %s failed: %v", r.RemoteAddr, err)
			c.Close(websocket.StatusInternalError, closeReason(err))
			return
		}

		if err := c.Write(ctx, websocket.MessageBinary, img.Bytes()); err != nil {
			log.Printf("send image to %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// wsProgress forwards render progress to a websocket client, one message per finished percent.
type wsProgress struct {
	ctx    context.Context
	conn   *websocket.Conn
	cancel context.CancelCauseFunc

	lastPct int
}

func (p *wsProgress) Diagnostic(name string, value float64) {
	log.Printf("%s: %g", name, value)
}

func (p *wsProgress) RowDone(row, total int) {
	pct := (row + 1) * 100 / total
	if pct == p.lastPct {
		return
	}
	p.lastPct = pct
	if err := wsjson.Write(p.ctx, p.conn, mandel.RowProgress{Row: row, Total: total}); err != nil {
		p.cancel(fmt.Errorf("send progress: %w", err))
	}
}

func (p *wsProgress) Done() {}

// closeReason fits err into a close frame, which carries at most 123 bytes.
func closeReason(err error) string {
	s := err.Error()
	if len(s) > 123 {
		s = s[:123]
	}
	return s
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// requestFromQuery builds a request from url parameters. Anything not given
// falls back to a 640x640 view of Seahorse Valley.
func requestFromQuery(q url.Values) (mandel.RenderRequest, error) {
	x, y, rng := mandel.SeahorseValley.Center()
	view := mandel.ViewConfig{
		X:             x,
		Y:             y,
		Range:         rng,
		Width:         640,
		Height:        640,
		MaxIterations: 256,
		Threshold:     1,
		Variant:       mandel.Variant(q.Get("variant")),
		JuliaX:        mandel.DefaultJuliaX,
		JuliaY:        mandel.DefaultJuliaY,
		Geometry:      mandel.Geometry(q.Get("geometry")),
	}
	if name := q.Get("region"); name != "" {
		region, ok := mandel.LookupRegion(name)
		if !ok {
			return mandel.RenderRequest{}, fmt.Errorf("unknown region %q", name)
		}
		view.X, view.Y, view.Range = region.Center()
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"x", &view.X},
		{"y", &view.Y},
		{"range", &view.Range},
		{"threshold", &view.Threshold},
		{"jx", &view.JuliaX},
		{"jy", &view.JuliaY},
	}
	for _, f := range floats {
		if s := q.Get(f.name); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return mandel.RenderRequest{}, fmt.Errorf("parameter %q: %w", f.name, err)
			}
			*f.dst = v
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &view.Width},
		{"height", &view.Height},
		{"maxiter", &view.MaxIterations},
	}
	for _, f := range ints {
		if s := q.Get(f.name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return mandel.RenderRequest{}, fmt.Errorf("parameter %q: %w", f.name, err)
			}
			*f.dst = v
		}
	}

	return mandel.RenderRequest{
		View:     view,
		Format:   q.Get("format"),
		Compress: q.Get("compress"),
	}, nil
}
