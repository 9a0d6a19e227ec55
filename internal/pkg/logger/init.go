package logger

import (
	"Balgil/internal/api/config"
	"io"
	log "log/slog"
	"os"
	"strings"
)

// InitLogger installs the JSON slog handler as default and returns the writer used for access logs
func InitLogger(cfg config.LogConfig) io.Writer {
	return InitLoggerWithWriter(cfg, os.Stdout)
}

func InitLoggerWithWriter(cfg config.LogConfig, w io.Writer) io.Writer {
	handler := log.NewJSONHandler(w, &log.HandlerOptions{Level: ParseLevel(cfg.Level)})
	log.SetDefault(log.New(&ContextHandler{handler}))
	return w
}

// ParseLevel falls back to info for unknown names
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
