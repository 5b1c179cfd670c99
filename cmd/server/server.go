package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"
)

// main is the entry point for the render server.
// Clients either GET /render for a one-shot image, or talk to /ws to also receive progress.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", ":8080", "http listen address")
	maxPixels := flag.Int("max-pixels", 2048*2048, "largest width*height a request may ask for")
	maxIterations := flag.Int("max-iterations", 1<<20, "largest maxiter a request may ask for")
	maxRenders := flag.Int("max-renders", 2, "renders allowed to run at the same time")
	workers := flag.Int("workers", 0, "render workers per image (default GOMAXPROCS)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rs := newRenderServer(*maxPixels, *maxIterations, *maxRenders, *workers)
	httpServer := webServer(*addr, rs)

	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("httpServer.Shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost%s", *addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
