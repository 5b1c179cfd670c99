// cliclient is a CLI client for the render server.
// It connects to the server's websocket, asks for one image, logs the progress and saves the result.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/distmandel"
	"github.com/marben/distmandel/internal/cli"
)

// maxImageBytes bounds the binary message the client accepts.
const maxImageBytes = 512 << 20

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		log.Fatalf("FATAL: %v", err)
	}
}

// run requests the image described by args from the server and saves it to a file.
// Returns an error if any step fails.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)
	fs.Usage = func() { cli.Usage(fs) }
	var view cli.ViewFlags
	server := fs.String("server", "ws://localhost:8080/ws", "websocket url of the render server")
	output := fs.String("o", "", "output file (default mandel.<format>)")
	view.Register(fs)

	// Step 1: Parse the view from the command line
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
	format, err := view.OutputFormat(cfg)
	if err != nil {
		return err
	}

	// Step 2: Ask the server for the image
	req := mandel.RenderRequest{View: cfg, Format: string(format), Compress: view.Compression()}
	log.Printf("Requesting %dx%d %s image from %s...", cfg.Width, cfg.Height, format, *server)
	img, err := fetch(ctx, *server, req, func(p mandel.RowProgress) {
		log.Printf("finished: %f", float32(p.Row+1)/float32(p.Total))
	})
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	// Step 3: Save the rendered image
	filename := *output
	if filename == "" {
		filename = "mandel." + string(format)
		if req.Compress != "" {
			filename += ".zst"
		}
	}
	log.Printf("Saving rendered image to %q...", filename)
	if err := os.WriteFile(filename, img, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Printf("Fully rendered image saved to %q", filename)
	return nil
}

// fetch sends req over a new websocket connection to url and waits for the image.
// onProgress is called for every progress message the server sends meanwhile.
func fetch(ctx context.Context, url string, req mandel.RenderRequest, onProgress func(mandel.RowProgress)) ([]byte, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(maxImageBytes)

	if err := wsjson.Write(ctx, c, req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				return nil, fmt.Errorf("server closed connection (%s): %w", status, err)
			}
			return nil, err
		}

		switch typ {
		case websocket.MessageText:
			var p mandel.RowProgress
			if err := json.Unmarshal(data, &p); err != nil {
				return nil, fmt.Errorf("bad progress message: %w", err)
			}
			onProgress(p)
		case websocket.MessageBinary:
			c.Close(websocket.StatusNormalClosure, "")
			return data, nil
		}
	}
}
