// helpers.go
package mapshot

import (
	"math"
	"strings"
)

// roundHalfUp rounds to the nearest integer with halves going up. math.Round
// would do the same for positive inputs, but the rounding rule is part of the
// window contract and tested, so it is spelled out.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// escapeJSString makes a string safe inside a single-quoted JS literal.
func escapeJSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "</", `<\/`)
	return s
}
