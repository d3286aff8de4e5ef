// logger.go
package mapshot

import (
	"log/slog"
	"os"
	"strings"
)

// SetupLogger builds the slog logger the cmd binaries share. Level comes from
// LOG_LEVEL, format from LOG_FORMAT ("json" or text); output goes to stderr
// so stdout stays free for piped image data.
func SetupLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h)
}
