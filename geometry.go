// geometry.go
package mapshot

import (
	"math"
)

// Web Mercator (EPSG:3857) meters-per-pixel at the equator for zoom 0,
// 256px tiles: 2 * pi * 6378137 / 256.
const mercatorMetersPerPixelZ0 = 156543.03392

const (
	earthRadiusM = 6371000.0

	// A marker set collapsed to (nearly) a single point still gets a
	// visible ring.
	minRingRadiusM = 200.0

	minZoom = 1.0
	maxZoom = 19.0 // Positron tile max
)

// validatePoint rejects out-of-range coordinates instead of clamping them.
func validatePoint(p GeoPoint) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return &InvalidGeometryError{Reason: "coordinate is NaN", Point: p}
	}
	if p.Lat < -90 || p.Lat > 90 {
		return &InvalidGeometryError{Reason: "latitude out of range [-90, 90]", Point: p}
	}
	if p.Lng < -180 || p.Lng > 180 {
		return &InvalidGeometryError{Reason: "longitude out of range [-180, 180]", Point: p}
	}
	return nil
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}

// BoundingCenterOf computes the bbox-midpoint center of the marker set and the
// great-circle distance to its farthest marker. The midpoint of the min/max of
// each axis is used rather than the centroid: an added outlier moves the
// midpoint by at most half its distance to the box, where a centroid of a
// large cluster would barely move and then the ring would clip the cluster
// edge on the next render.
func BoundingCenterOf(markers []BusinessMarker) (BoundingCenter, error) {
	if len(markers) == 0 {
		return BoundingCenter{}, &InvalidGeometryError{Reason: "empty marker set"}
	}

	minLat, maxLat := markers[0].Point.Lat, markers[0].Point.Lat
	minLng, maxLng := markers[0].Point.Lng, markers[0].Point.Lng
	for _, m := range markers {
		if err := validatePoint(m.Point); err != nil {
			return BoundingCenter{}, err
		}
		minLat = math.Min(minLat, m.Point.Lat)
		maxLat = math.Max(maxLat, m.Point.Lat)
		minLng = math.Min(minLng, m.Point.Lng)
		maxLng = math.Max(maxLng, m.Point.Lng)
	}

	// A longitude span over 180° means the set straddles the antimeridian and
	// the naive midpoint would land on the wrong side of the globe. Flag it.
	if maxLng-minLng > 180 {
		return BoundingCenter{}, &InvalidGeometryError{
			Reason: "marker set spans the antimeridian",
			Point:  GeoPoint{Lat: (minLat + maxLat) / 2, Lng: minLng},
		}
	}

	center := GeoPoint{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2}

	var maxDist float64
	for _, m := range markers {
		if d := HaversineM(center, m.Point); d > maxDist {
			maxDist = d
		}
	}
	return BoundingCenter{Center: center, MaxDistanceM: maxDist}, nil
}

// metersPerPixel returns meters per CSS pixel at the given latitude and zoom.
func metersPerPixel(latDeg, zoom float64) float64 {
	return mercatorMetersPerPixelZ0 * math.Cos(latDeg*math.Pi/180) / math.Pow(2, zoom)
}

// zoomForRing solves the zoom at which a circle of radiusM occupies
// zoomFraction of the window height (diameter over height). Derived from the
// meters-per-pixel formula:
//
//	z = log2(156543.03392 * cos(lat) * targetRadiusPx / radiusM)
//
// The result is fractional and clamped to [minZoom, maxZoom]; rounding it here
// would reintroduce the visible zoom snapping between near-identical renders.
func zoomForRing(latDeg, radiusM float64, heightPx int, zoomFraction float64) float64 {
	targetRadiusPx := float64(heightPx) * zoomFraction / 2
	if radiusM <= 0 {
		radiusM = minRingRadiusM
	}
	numerator := mercatorMetersPerPixelZ0 * math.Cos(latDeg*math.Pi/180) * targetRadiusPx
	z := math.Log2(math.Max(numerator/radiusM, 1e-6))
	return math.Max(minZoom, math.Min(z, maxZoom))
}

// ComputeSceneGeometry solves center, zoom and ring radius for a marker set.
// An empty set is a valid degenerate input: the configured default view is
// returned with RingRadiusM == 0 (no ring). Malformed coordinates return an
// InvalidGeometryError.
func ComputeSceneGeometry(markers []BusinessMarker, cfg Config, window RenderWindow) (SceneGeometry, error) {
	if len(markers) == 0 {
		return SceneGeometry{Center: cfg.DefaultCenter, Zoom: cfg.DefaultZoom, RingRadiusM: 0}, nil
	}

	bc, err := BoundingCenterOf(markers)
	if err != nil {
		return SceneGeometry{}, err
	}

	radiusM := math.Max(bc.MaxDistanceM, minRingRadiusM)
	zoom := zoomForRing(bc.Center.Lat, radiusM, window.HeightPx, cfg.ZoomFraction)
	if !cfg.UseFractionalZoom {
		zoom = math.Round(zoom)
	}

	return SceneGeometry{Center: bc.Center, Zoom: zoom, RingRadiusM: radiusM}, nil
}
