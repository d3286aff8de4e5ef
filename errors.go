// errors.go
package mapshot

import (
	"errors"
	"fmt"
)

// Sentinel errors for the render driver's failure modes. None of these are
// retried inside this package; the caller decides whether a retry makes sense
// (launch/timeout failures are environmental, element-not-found is a scene
// construction bug).
var (
	ErrBrowserLaunch   = errors.New("browser launch failed")
	ErrRenderTimeout   = errors.New("render timed out")
	ErrElementNotFound = errors.New("map element not found")
	ErrEmptyScreenshot = errors.New("screenshot buffer is empty")
)

// InvalidGeometryError reports malformed input coordinates. Bad data fails
// loudly here instead of being clamped into a plausible-looking map.
type InvalidGeometryError struct {
	Reason string
	Point  GeoPoint
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s (lat=%.6f lng=%.6f)", e.Reason, e.Point.Lat, e.Point.Lng)
}

// DimensionMismatchError reports a captured image whose pixel size differs
// from the requested render window. Carries both sizes so the mismatch can be
// diagnosed without re-running the render.
type DimensionMismatchError struct {
	Expected RenderWindow
	Actual   RenderWindow
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %dx%d, got %dx%d",
		e.Expected.WidthPx, e.Expected.HeightPx, e.Actual.WidthPx, e.Actual.HeightPx)
}

// IsInvalidGeometry reports whether err is (or wraps) an InvalidGeometryError.
func IsInvalidGeometry(err error) bool {
	var ige *InvalidGeometryError
	return errors.As(err, &ige)
}

// IsDimensionMismatch reports whether err is (or wraps) a DimensionMismatchError.
func IsDimensionMismatch(err error) bool {
	var dme *DimensionMismatchError
	return errors.As(err, &dme)
}
