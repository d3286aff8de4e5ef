// pipeline.go
package mapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GenerateMapPNG runs the full pipeline for one marker set: geometry →
// aspect-fit window → scene → browser render → dimension check → file write.
// Each stage strictly gates the next. The returned Artifact holds the written
// path and bytes so callers can hand the same image to every document slot
// that needs it instead of rendering twice.
//
// aspectRatio ≤ 0 selects the 3:2 default.
func GenerateMapPNG(ctx context.Context, markers []BusinessMarker, cfg Config, aspectRatio float64, outPath string, logger *slog.Logger) (Artifact, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return Artifact{}, fmt.Errorf("invalid config: %w", err)
	}

	window := ResolveWindow(aspectRatio, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(markers, cfg, window)
	if err != nil {
		return Artifact{}, err
	}
	logger.Info("scene geometry solved",
		"center_lat", geom.Center.Lat, "center_lng", geom.Center.Lng,
		"zoom", geom.Zoom, "ring_radius_m", geom.RingRadiusM, "markers", len(markers))

	scene := BuildScene(markers, geom, window, cfg)

	result, err := NewRenderer(cfg, logger).Render(ctx, scene)
	if err != nil {
		return Artifact{}, err
	}

	result, err = VerifyDimensions(result, window, cfg.StrictDimCheck, logger)
	if err != nil {
		return Artifact{}, err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Artifact{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, result.PNG, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logger.Info("map image written", "path", outPath,
		"size_bytes", len(result.PNG),
		"final_png", fmt.Sprintf("%dx%d", result.ActualWidthPx, result.ActualHeightPx))

	return Artifact{Path: outPath, PNG: result.PNG, Window: window}, nil
}
