// preview.go
package mapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"
	"github.com/google/uuid"
)

// Preview palette mirrors the browser scene so a reviewer sees the same
// trusted/other split and ring framing.
var (
	previewTrusted = color.RGBA{R: 0x2c, G: 0xa2, B: 0x5f, A: 0xff}
	previewOther   = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
	previewRing    = color.RGBA{R: 0x2c, G: 0x7f, B: 0xb8, A: 0xcc}
	previewRingBg  = color.RGBA{R: 0x2c, G: 0x7f, B: 0xb8, A: 0x0d}
)

// RenderPreview rasterizes the marker set to a static map image without a
// browser. This is the human-review path only: static tile compositing cannot
// honor fractional zoom or the pixel-exact element capture the document
// pipeline requires, so a preview is never substituted for a failed render.
func RenderPreview(markers []BusinessMarker, cfg Config, window RenderWindow) (image.Image, error) {
	geom, err := ComputeSceneGeometry(markers, cfg, window)
	if err != nil {
		return nil, err
	}

	mctx := sm.NewContext()
	mctx.SetSize(window.WidthPx, window.HeightPx)
	mctx.SetCenter(s2.LatLngFromDegrees(geom.Center.Lat, geom.Center.Lng))
	// Static tiles only support integer zoom.
	mctx.SetZoom(int(math.Round(geom.Zoom)))

	if geom.RingRadiusM > 0 {
		mctx.AddObject(sm.NewCircle(
			s2.LatLngFromDegrees(geom.Center.Lat, geom.Center.Lng),
			previewRing, previewRingBg, geom.RingRadiusM, 1.2))
	}
	for _, m := range markers {
		fill := previewOther
		if m.Trusted {
			fill = previewTrusted
		}
		mctx.AddObject(sm.NewMarker(s2.LatLngFromDegrees(m.Point.Lat, m.Point.Lng), fill, 14.0))
	}

	img, err := mctx.Render()
	if err != nil {
		return nil, fmt.Errorf("static preview render failed: %w", err)
	}
	return img, nil
}

// SavePreviewPNG renders a preview and writes it under dir with a unique
// name, returning the written path.
func SavePreviewPNG(markers []BusinessMarker, cfg Config, window RenderWindow, dir string) (string, error) {
	img, err := RenderPreview(markers, cfg, window)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("map-preview-%s.png", uuid.New().String()))
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("failed to save preview PNG: %w", err)
	}
	return path, nil
}
