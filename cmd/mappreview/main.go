// Command mappreview renders a quick browser-free static preview of a marker
// set for human review. It shares the markers JSON format with mapshot but
// composites tiles directly instead of driving a browser; the output is for
// eyeballing geometry, never for document embedding.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	mapshot "github.com/buffos/go-mapshot"
)

type businessRecord struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Trusted   bool     `json:"trusted"`
}

func main() {
	outDir := flag.String("d", ".", "directory for the preview PNG")
	aspectRatio := flag.Float64("aspect", 0, "target aspect ratio (width/height); 0 means the 3:2 default")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <markers.json>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	_ = godotenv.Load(".env")
	logger := mapshot.SetupLogger()
	slog.SetDefault(logger)

	cfg, err := mapshot.ConfigFromEnv()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dataBytes, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("failed to read markers file", "path", args[0], "error", err)
		os.Exit(1)
	}
	var records []businessRecord
	if err := json.Unmarshal(dataBytes, &records); err != nil {
		logger.Error("failed to parse markers JSON", "path", args[0], "error", err)
		os.Exit(1)
	}

	markers := make([]mapshot.BusinessMarker, 0, len(records))
	for _, rec := range records {
		if rec.Latitude == nil || rec.Longitude == nil {
			continue
		}
		markers = append(markers, mapshot.BusinessMarker{
			Point:   mapshot.GeoPoint{Lat: *rec.Latitude, Lng: *rec.Longitude},
			Label:   rec.Name,
			Trusted: rec.Trusted,
		})
	}

	window := mapshot.ResolveWindow(*aspectRatio, cfg.WindowHeightPx)
	path, err := mapshot.SavePreviewPNG(markers, cfg, window, *outDir)
	if err != nil {
		logger.Error("preview render failed", "error", err)
		os.Exit(1)
	}
	logger.Info("preview written", "path", path,
		"window", fmt.Sprintf("%dx%d", window.WidthPx, window.HeightPx))
}
