// Command mapshot renders a marker set to a pixel-exact map PNG.
//
// Input is a JSON file of business records:
//
//	[{"name": "...", "latitude": 30.0, "longitude": -97.0, "trusted": true}, ...]
//
// Records without coordinates are skipped before rendering. Environment knobs
// (MAPSHOT_*, see ConfigFromEnv) may come from a .env file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	mapshot "github.com/buffos/go-mapshot"
)

// businessRecord is the upstream data shape. Coordinates are pointers because
// the source data legitimately has rows without them.
type businessRecord struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Trusted   bool     `json:"trusted"`
}

func main() {
	outputFile := flag.String("o", "map.png", "output PNG path")
	aspectRatio := flag.Float64("aspect", 0, "target aspect ratio (width/height); 0 means the 3:2 default")
	debugOverlay := flag.Bool("debug-overlay", false, "draw a QA pin at the computed center")
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
	if *debugOverlay {
		cfg.DebugOverlay = true
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
	skipped := 0
	for _, rec := range records {
		if rec.Latitude == nil || rec.Longitude == nil {
			skipped++
			continue
		}
		markers = append(markers, mapshot.BusinessMarker{
			Point:   mapshot.GeoPoint{Lat: *rec.Latitude, Lng: *rec.Longitude},
			Label:   rec.Name,
			Trusted: rec.Trusted,
		})
	}
	if skipped > 0 {
		logger.Warn("skipped records without coordinates", "skipped", skipped, "kept", len(markers))
	}

	artifact, err := mapshot.GenerateMapPNG(context.Background(), markers, cfg, *aspectRatio, *outputFile, logger)
	if err != nil {
		logger.Error("map render failed", "error", err)
		os.Exit(1)
	}
	logger.Info("done", "path", artifact.Path,
		"window", fmt.Sprintf("%dx%d", artifact.Window.WidthPx, artifact.Window.HeightPx))
}
