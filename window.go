// window.go
package mapshot

// ResolveWindow derives the render window from the consuming template's
// aspect ratio: height is fixed, width = round-half-up(height * ratio).
// A zero or negative ratio falls back to 3:2.
//
// This runs before the scene is built so the capture already matches the
// document's placement ratio; cropping the image afterwards is exactly the
// rail-artifact bug class this package exists to avoid.
func ResolveWindow(aspectRatio float64, windowHeightPx int) RenderWindow {
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	if windowHeightPx <= 0 {
		windowHeightPx = DefaultWindowHeightPx
	}
	return RenderWindow{
		WidthPx:  roundHalfUp(float64(windowHeightPx) * aspectRatio),
		HeightPx: windowHeightPx,
	}
}
