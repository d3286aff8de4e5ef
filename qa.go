// qa.go
package mapshot

import (
	"log/slog"
)

// VerifyDimensions compares the captured raster's pixel size against the
// requested window. Exact match passes the result through untouched. On a
// mismatch with strict enabled (the default) a DimensionMismatchError carrying
// both sizes is returned; with strict disabled the mismatch is logged as a
// warning and the result passes through anyway. The non-strict path is an
// escape hatch for degraded environments and never alters the pixel content.
func VerifyDimensions(result RenderResult, window RenderWindow, strict bool, logger *slog.Logger) (RenderResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if result.ActualWidthPx == window.WidthPx && result.ActualHeightPx == window.HeightPx {
		return result, nil
	}

	mismatch := &DimensionMismatchError{
		Expected: window,
		Actual:   RenderWindow{WidthPx: result.ActualWidthPx, HeightPx: result.ActualHeightPx},
	}
	if strict {
		return RenderResult{}, mismatch
	}
	logger.Warn("dimension mismatch passed through (strict check disabled)",
		"expected", mismatch.Expected, "actual", mismatch.Actual)
	return result, nil
}
