// geometry_test.go
package mapshot

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func triangleMarkers() []BusinessMarker {
	return []BusinessMarker{
		{Point: GeoPoint{Lat: 30.0, Lng: -97.0}, Label: "A", Trusted: true},
		{Point: GeoPoint{Lat: 30.1, Lng: -97.1}, Label: "B", Trusted: false},
		{Point: GeoPoint{Lat: 29.9, Lng: -96.9}, Label: "C", Trusted: true},
	}
}

func TestBoundingCenterIsBboxMidpoint(t *testing.T) {
	bc, err := BoundingCenterOf(triangleMarkers())
	if err != nil {
		t.Fatalf("BoundingCenterOf failed: %v", err)
	}
	if !almostEqual(bc.Center.Lat, 30.0, 1e-9) || !almostEqual(bc.Center.Lng, -97.0, 1e-9) {
		t.Errorf("center = (%.9f, %.9f), want bbox midpoint (30.0, -97.0)", bc.Center.Lat, bc.Center.Lng)
	}
}

func TestCenterLiesWithinBoundingBox(t *testing.T) {
	sets := map[string][]BusinessMarker{
		"triangle": triangleMarkers(),
		"line": {
			{Point: GeoPoint{Lat: 40.0, Lng: -75.0}},
			{Point: GeoPoint{Lat: 40.0, Lng: -74.0}},
		},
		"single": {
			{Point: GeoPoint{Lat: 51.5, Lng: -0.12}},
		},
		"cluster with outlier": {
			{Point: GeoPoint{Lat: 30.00, Lng: -97.00}},
			{Point: GeoPoint{Lat: 30.01, Lng: -97.01}},
			{Point: GeoPoint{Lat: 30.02, Lng: -97.00}},
			{Point: GeoPoint{Lat: 30.50, Lng: -97.50}},
		},
	}
	for name, markers := range sets {
		t.Run(name, func(t *testing.T) {
			bc, err := BoundingCenterOf(markers)
			if err != nil {
				t.Fatalf("BoundingCenterOf failed: %v", err)
			}
			minLat, maxLat := markers[0].Point.Lat, markers[0].Point.Lat
			minLng, maxLng := markers[0].Point.Lng, markers[0].Point.Lng
			for _, m := range markers {
				minLat = math.Min(minLat, m.Point.Lat)
				maxLat = math.Max(maxLat, m.Point.Lat)
				minLng = math.Min(minLng, m.Point.Lng)
				maxLng = math.Max(maxLng, m.Point.Lng)
			}
			if bc.Center.Lat < minLat || bc.Center.Lat > maxLat || bc.Center.Lng < minLng || bc.Center.Lng > maxLng {
				t.Errorf("center (%.6f, %.6f) outside bbox [%.6f,%.6f]x[%.6f,%.6f]",
					bc.Center.Lat, bc.Center.Lng, minLat, maxLat, minLng, maxLng)
			}
		})
	}
}

func TestRingContainsAllMarkers(t *testing.T) {
	markers := triangleMarkers()
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(markers, cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	for _, m := range markers {
		d := HaversineM(geom.Center, m.Point)
		if d > geom.RingRadiusM+1e-6 {
			t.Errorf("marker %q at distance %.1fm outside ring radius %.1fm", m.Label, d, geom.RingRadiusM)
		}
	}
}

func TestGeometryIsDeterministic(t *testing.T) {
	markers := triangleMarkers()
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	first, err := ComputeSceneGeometry(markers, cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeSceneGeometry(markers, cfg, window)
		if err != nil {
			t.Fatalf("repeat %d failed: %v", i, err)
		}
		if again != first {
			t.Fatalf("repeat %d produced %+v, want %+v", i, again, first)
		}
	}
}

func TestEmptyMarkerSetUsesDefaultView(t *testing.T) {
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(nil, cfg, window)
	if err != nil {
		t.Fatalf("empty marker set must not error, got: %v", err)
	}
	if geom.Center != cfg.DefaultCenter {
		t.Errorf("center = %+v, want default %+v", geom.Center, cfg.DefaultCenter)
	}
	if geom.Zoom != cfg.DefaultZoom {
		t.Errorf("zoom = %v, want default %v", geom.Zoom, cfg.DefaultZoom)
	}
	if geom.RingRadiusM != 0 {
		t.Errorf("ring radius = %v, want 0 (no ring)", geom.RingRadiusM)
	}
}

func TestMalformedCoordinatesAreRejected(t *testing.T) {
	cases := map[string]GeoPoint{
		"lat too high": {Lat: 90.5, Lng: 0},
		"lat too low":  {Lat: -91, Lng: 0},
		"lng too high": {Lat: 0, Lng: 180.01},
		"lng too low":  {Lat: 0, Lng: -200},
		"lat NaN":      {Lat: math.NaN(), Lng: 0},
		"lng NaN":      {Lat: 0, Lng: math.NaN()},
	}
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeSceneGeometry([]BusinessMarker{{Point: p}}, cfg, window)
			if err == nil {
				t.Fatal("expected InvalidGeometryError, got nil")
			}
			if !IsInvalidGeometry(err) {
				t.Errorf("expected InvalidGeometryError, got %T: %v", err, err)
			}
		})
	}
}

func TestAntimeridianSpanIsFlagged(t *testing.T) {
	markers := []BusinessMarker{
		{Point: GeoPoint{Lat: 10, Lng: 179.9}},
		{Point: GeoPoint{Lat: 10, Lng: -179.9}},
	}
	_, err := BoundingCenterOf(markers)
	if err == nil {
		t.Fatal("expected antimeridian span to be rejected, got nil")
	}
	if !IsInvalidGeometry(err) {
		t.Errorf("expected InvalidGeometryError, got %T: %v", err, err)
	}
}

func TestZoomIsFractionalAndInRange(t *testing.T) {
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(triangleMarkers(), cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	if geom.Zoom < 1 || geom.Zoom > 19 {
		t.Errorf("zoom %v outside [1, 19]", geom.Zoom)
	}
	if geom.Zoom == math.Round(geom.Zoom) {
		t.Errorf("zoom %v is an integer; fractional zoom expected for this marker set", geom.Zoom)
	}

	cfg.UseFractionalZoom = false
	geomInt, err := ComputeSceneGeometry(triangleMarkers(), cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	if geomInt.Zoom != math.Round(geomInt.Zoom) {
		t.Errorf("zoom %v should be integral with fractional zoom disabled", geomInt.Zoom)
	}
}

// The solved zoom must put the ring diameter at zoom_fraction of the window
// height when projected through the Mercator scale at the center latitude.
func TestZoomSolvesRingFraction(t *testing.T) {
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(triangleMarkers(), cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	ringPx := geom.RingRadiusM / metersPerPixel(geom.Center.Lat, geom.Zoom)
	wantPx := cfg.ZoomFraction * float64(window.HeightPx) / 2
	if !almostEqual(ringPx, wantPx, 0.5) {
		t.Errorf("ring radius projects to %.2fpx, want %.2fpx", ringPx, wantPx)
	}
}

func TestTinyMarkerSetGetsRingFloor(t *testing.T) {
	markers := []BusinessMarker{{Point: GeoPoint{Lat: 30.0, Lng: -97.0}, Label: "only"}}
	cfg := DefaultConfig()
	window := ResolveWindow(1.5, cfg.WindowHeightPx)

	geom, err := ComputeSceneGeometry(markers, cfg, window)
	if err != nil {
		t.Fatalf("ComputeSceneGeometry failed: %v", err)
	}
	if geom.RingRadiusM != minRingRadiusM {
		t.Errorf("ring radius = %v, want floor %v for a single-point set", geom.RingRadiusM, minRingRadiusM)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Austin to Dallas, roughly 293 km.
	austin := GeoPoint{Lat: 30.2672, Lng: -97.7431}
	dallas := GeoPoint{Lat: 32.7767, Lng: -96.7970}
	d := HaversineM(austin, dallas)
	if d < 280000 || d > 305000 {
		t.Errorf("Austin-Dallas distance = %.0fm, want ~293km", d)
	}
	if HaversineM(austin, austin) != 0 {
		t.Errorf("distance to self should be 0, got %v", HaversineM(austin, austin))
	}
}
