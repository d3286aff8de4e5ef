// config_test.go
package mapshot

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ZoomFraction != 0.75 {
		t.Errorf("ZoomFraction = %v, want 0.75", cfg.ZoomFraction)
	}
	if cfg.WindowHeightPx != 800 {
		t.Errorf("WindowHeightPx = %d, want 800", cfg.WindowHeightPx)
	}
	if !cfg.UseFractionalZoom || !cfg.StrictDimCheck {
		t.Error("fractional zoom and strict dimension check must default on")
	}
	if cfg.DebugOverlay {
		t.Error("debug overlay must default off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate, got: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MAPSHOT_ZOOM_FRACTION", "0.60")
	t.Setenv("MAPSHOT_WINDOW_HEIGHT_PX", "600")
	t.Setenv("MAPSHOT_USE_FRACTIONAL_ZOOM", "false")
	t.Setenv("MAPSHOT_STRICT_DIM_CHECK", "false")
	t.Setenv("MAPSHOT_DEBUG_OVERLAY", "true")
	t.Setenv("MAPSHOT_TILE_WAIT_TIMEOUT", "5s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}
	if cfg.ZoomFraction != 0.60 || cfg.WindowHeightPx != 600 {
		t.Errorf("parsed cfg = %+v", cfg)
	}
	if cfg.UseFractionalZoom || cfg.StrictDimCheck || !cfg.DebugOverlay {
		t.Errorf("boolean knobs not applied: %+v", cfg)
	}
	if cfg.TileWaitTimeout != 5*time.Second {
		t.Errorf("TileWaitTimeout = %v, want 5s", cfg.TileWaitTimeout)
	}
}

func TestConfigValidateRejectsOutOfRange(t *testing.T) {
	cases := map[string]func(*Config){
		"zoom fraction too low":  func(c *Config) { c.ZoomFraction = 0.5 },
		"zoom fraction too high": func(c *Config) { c.ZoomFraction = 0.95 },
		"zero height":            func(c *Config) { c.WindowHeightPx = 0 },
		"zero tile wait":         func(c *Config) { c.TileWaitTimeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigFromEnvRejectsOutOfRangeFraction(t *testing.T) {
	t.Setenv("MAPSHOT_ZOOM_FRACTION", "0.30")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("out-of-range zoom fraction must be rejected, not clamped")
	}
}

func TestConfigFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("MAPSHOT_WINDOW_HEIGHT_PX", "tall")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("non-numeric height must be rejected")
	}
}
