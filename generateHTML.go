// generateHTML.go
package mapshot

import (
	"fmt"
	"strings"
)

// Basemap: CARTO Positron, the muted style the report maps use.
const (
	positronTileURL  = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	positronTileAttr = "© OpenStreetMap contributors © CARTO"

	leafletCSSURL = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJSURL  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	// Marker palette: trusted records pop, the rest stay neutral.
	trustedFillColor = "#2ca25f"
	otherFillColor   = "#7f8c8d"
	ringColor        = "#2c7fb8"
	debugPinColor    = "#d7301f"

	mapElementID = "map"
)

// BuildScene produces a self-contained Leaflet document sized to exactly
// window pixels: zero margins, overflow hidden, the #map element gaplessly
// filled by the map. The driver screenshots that element, so any chrome
// around it would survive into the capture.
//
// The view is asserted twice: once at construction and again with an explicit
// setView after layout settles. Leaflet snaps the center/zoom during the
// first layout if the container size changes under it, and that snap is
// silent; re-asserting is what keeps repeated renders of the same input
// pixel-stable.
func BuildScene(markers []BusinessMarker, geom SceneGeometry, window RenderWindow, cfg Config) SceneDocument {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	b.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"%s\"/>\n", leafletCSSURL))
	b.WriteString(fmt.Sprintf("<script src=\"%s\"></script>\n", leafletJSURL))

	b.WriteString("<style>\n")
	b.WriteString("html, body { margin: 0; padding: 0; overflow: hidden; }\n")
	b.WriteString(fmt.Sprintf("#%s { width: %dpx; height: %dpx; }\n", mapElementID, window.WidthPx, window.HeightPx))
	// Subtle basemap fade & desaturation so markers pop.
	b.WriteString(".leaflet-container .leaflet-tile { opacity: 0.92; filter: saturate(0.85) brightness(1.02); }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	b.WriteString(fmt.Sprintf("<div id=\"%s\"></div>\n", mapElementID))

	if !cfg.HideLegend {
		b.WriteString(legendHTML())
	}

	b.WriteString("<script>\n(function() {\n")
	b.WriteString(fmt.Sprintf("  var map = L.map('%s', { zoomControl: false, zoomSnap: 0, zoomDelta: 0.1, maxZoom: 19 });\n", mapElementID))
	b.WriteString(fmt.Sprintf("  map.setView([%.6f, %.6f], %.4f, {animate: false});\n", geom.Center.Lat, geom.Center.Lng, geom.Zoom))
	b.WriteString(fmt.Sprintf("  var tiles = L.tileLayer('%s', { attribution: '%s', maxZoom: 19 }).addTo(map);\n",
		positronTileURL, escapeJSString(positronTileAttr)))

	// Dashed search radius ring.
	if geom.RingRadiusM > 0 {
		b.WriteString(fmt.Sprintf(
			"  L.circle([%.6f, %.6f], { radius: %.1f, color: '%s', weight: 1.2, opacity: 0.8, fill: true, fillOpacity: 0.05, dashArray: '6 6' }).addTo(map);\n",
			geom.Center.Lat, geom.Center.Lng, geom.RingRadiusM, ringColor))
	}

	for _, m := range markers {
		fill := otherFillColor
		if m.Trusted {
			fill = trustedFillColor
		}
		b.WriteString(fmt.Sprintf(
			"  L.circleMarker([%.6f, %.6f], { radius: 8, weight: 2, color: '#ffffff', fill: true, fillColor: '%s', fillOpacity: 0.95 }).bindTooltip('%s').addTo(map);\n",
			m.Point.Lat, m.Point.Lng, fill, escapeJSString(escapeHTML(m.Label))))
	}

	if cfg.DebugOverlay {
		// Visual QA pin at the computed center. Never on in production output.
		b.WriteString(fmt.Sprintf(
			"  L.circleMarker([%.6f, %.6f], { radius: 4, weight: 1, color: '%s', fill: true, fillColor: '%s', fillOpacity: 1.0 }).addTo(map);\n",
			geom.Center.Lat, geom.Center.Lng, debugPinColor, debugPinColor))
	}

	// Re-assert the view after layout settles, then publish an explicit
	// readiness flag once tile loading quiesces. The driver polls the flag
	// instead of sleeping a fixed interval.
	b.WriteString(fmt.Sprintf(`  window.__mapReady = false;
  setTimeout(function() {
    map.invalidateSize(false);
    map.setView([%.6f, %.6f], %.4f, {animate: false});
  }, 60);
  function tilesSettled() {
    var loading = document.querySelectorAll('.leaflet-tile-loading').length;
    var loaded = document.querySelectorAll('.leaflet-tile-loaded').length;
    return loading === 0 && loaded > 0;
  }
  var poll = setInterval(function() {
    if (tilesSettled()) {
      clearInterval(poll);
      setTimeout(function() { window.__mapReady = true; }, 400);
    }
  }, 250);
`, geom.Center.Lat, geom.Center.Lng, geom.Zoom))
	b.WriteString("})();\n</script>\n</body>\n</html>\n")

	return SceneDocument{HTML: b.String(), MapElementID: mapElementID, Window: window}
}

// legendHTML is the fixed legend box from the report style: larger type, soft
// shadow, pinned to the top-right corner of the map.
func legendHTML() string {
	return `<div style="position: fixed; top: 12px; right: 12px; z-index: 9999;
            background: rgba(255,255,255,0.96); border: 1px solid #d0d0d0;
            border-radius: 6px; padding: 14px 16px; font-size: 18px; line-height: 1.6;
            font-family: sans-serif; box-shadow: 0 2px 8px rgba(0,0,0,.15);">
  <div style="font-weight:600; margin-bottom:8px;">Legend</div>
  <div><span style="display:inline-block;width:14px;height:14px;border:2px solid #fff;background:` + trustedFillColor + `;border-radius:50%;margin-right:8px;"></span>Trusted</div>
  <div><span style="display:inline-block;width:14px;height:14px;border:2px solid #fff;background:` + otherFillColor + `;border-radius:50%;margin-right:8px;"></span>Other</div>
</div>
`
}
