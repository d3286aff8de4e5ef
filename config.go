// config.go
package mapshot

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the configuration knobs. The zoom fraction bounds are hard
// limits: below 0.60 the ring drowns in empty basemap, above 0.90 the dashes
// touch the image edge.
const (
	DefaultZoomFraction   = 0.75
	MinZoomFraction       = 0.60
	MaxZoomFraction       = 0.90
	DefaultWindowHeightPx = 800
	DefaultAspectRatio    = 1.5 // 3:2, the consuming template's fallback ratio
	DefaultTileWait       = 12 * time.Second

	// Continental-US framing used when a render is requested with no markers.
	fallbackCenterLat = 39.8283
	fallbackCenterLng = -98.5795
	fallbackZoom      = 4.0
)

// Config carries every knob this package consumes. It is passed explicitly
// into each call; the library never reads the process environment itself, so
// tests don't have to mutate it.
type Config struct {
	ZoomFraction      float64       // fraction of window height the ring diameter fills
	WindowHeightPx    int           // render window height; width derives from the aspect ratio
	UseFractionalZoom bool          // false rounds the solved zoom to the nearest integer
	StrictDimCheck    bool          // false demotes DimensionMismatch to a warning
	DebugOverlay      bool          // draw a crosshair at the computed center (QA only)
	HideLegend        bool          // suppress the trusted/other legend box
	TileWaitTimeout   time.Duration // bound on the tile readiness wait
	DefaultCenter     GeoPoint      // view used for an empty marker set
	DefaultZoom       float64
}

// DefaultConfig returns the production defaults: fractional zoom on, strict
// dimension check on, debug overlay off.
func DefaultConfig() Config {
	return Config{
		ZoomFraction:      DefaultZoomFraction,
		WindowHeightPx:    DefaultWindowHeightPx,
		UseFractionalZoom: true,
		StrictDimCheck:    true,
		DebugOverlay:      false,
		HideLegend:        false,
		TileWaitTimeout:   DefaultTileWait,
		DefaultCenter:     GeoPoint{Lat: fallbackCenterLat, Lng: fallbackCenterLng},
		DefaultZoom:       fallbackZoom,
	}
}

// ConfigFromEnv builds a Config from MAPSHOT_* environment variables, falling
// back to DefaultConfig for anything unset. Out-of-range values are rejected,
// not clamped. Callers that want .env support load it themselves (godotenv in
// the cmd mains) before calling this.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("MAPSHOT_ZOOM_FRACTION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("MAPSHOT_ZOOM_FRACTION: %w", err)
		}
		cfg.ZoomFraction = f
	}
	if v := os.Getenv("MAPSHOT_WINDOW_HEIGHT_PX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("MAPSHOT_WINDOW_HEIGHT_PX: %w", err)
		}
		cfg.WindowHeightPx = n
	}
	if v := os.Getenv("MAPSHOT_USE_FRACTIONAL_ZOOM"); v != "" {
		cfg.UseFractionalZoom = v == "true" || v == "1"
	}
	if v := os.Getenv("MAPSHOT_STRICT_DIM_CHECK"); v != "" {
		cfg.StrictDimCheck = v == "true" || v == "1"
	}
	if v := os.Getenv("MAPSHOT_DEBUG_OVERLAY"); v != "" {
		cfg.DebugOverlay = v == "true" || v == "1"
	}
	if v := os.Getenv("MAPSHOT_HIDE_LEGEND"); v != "" {
		cfg.HideLegend = v == "true" || v == "1"
	}
	if v := os.Getenv("MAPSHOT_TILE_WAIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("MAPSHOT_TILE_WAIT_TIMEOUT: %w", err)
		}
		cfg.TileWaitTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the knob ranges.
func (c Config) Validate() error {
	if c.ZoomFraction < MinZoomFraction || c.ZoomFraction > MaxZoomFraction {
		return fmt.Errorf("zoom_fraction %.2f outside [%.2f, %.2f]", c.ZoomFraction, MinZoomFraction, MaxZoomFraction)
	}
	if c.WindowHeightPx <= 0 {
		return fmt.Errorf("window_height_px must be positive, got %d", c.WindowHeightPx)
	}
	if c.TileWaitTimeout <= 0 {
		return fmt.Errorf("tile_wait_timeout must be positive, got %s", c.TileWaitTimeout)
	}
	return nil
}
