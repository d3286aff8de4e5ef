// models.go
package mapshot

// --- Input Structs ---

// GeoPoint is a WGS84 coordinate pair. Valid range: lat [-90,90], lng [-180,180].
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BusinessMarker is one plottable business record. Records without coordinates
// are filtered out by the caller before they reach this package.
type BusinessMarker struct {
	Point   GeoPoint `json:"point"`
	Label   string   `json:"label"`
	Trusted bool     `json:"trusted"`
}

// --- Geometry Structs ---

// SceneGeometry is the solved view for a marker set: where to center the map,
// how far to zoom, and how large the search ring is. RingRadiusM == 0 means
// no ring is drawn (empty marker set).
type SceneGeometry struct {
	Center      GeoPoint `json:"center"`
	Zoom        float64  `json:"zoom"`
	RingRadiusM float64  `json:"ring_radius_m"`
}

// BoundingCenter is the bbox-midpoint center of a marker set together with the
// great-circle distance to its farthest marker.
type BoundingCenter struct {
	Center       GeoPoint `json:"center"`
	MaxDistanceM float64  `json:"max_distance_m"`
}

// --- Render Structs ---

// RenderWindow is the exact pixel size of the render target. The captured
// image must match it 1:1; see VerifyDimensions.
type RenderWindow struct {
	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`
}

// SceneDocument is a self-contained renderable HTML document. MapElementID is
// the id of the element the driver screenshots; the capture is scoped to that
// element only, never the whole window.
type SceneDocument struct {
	HTML         string
	MapElementID string
	Window       RenderWindow
}

// RenderResult is the captured raster plus its decoded pixel dimensions.
type RenderResult struct {
	PNG            []byte
	ActualWidthPx  int
	ActualHeightPx int
}

// Artifact is a finished, verified map image. The same artifact must be handed
// to every document slot that wants this map; re-rendering the same input is
// not guaranteed to be byte-identical (tile timing, font rasterization).
type Artifact struct {
	Path   string
	PNG    []byte
	Window RenderWindow
}
