package logging

import (
	"log/slog"
	"os"
)

// Setup routes the default logger to JSON on stdout. LOG_LEVEL (debug, info,
// warn, error) overrides the info default; the database sink is attached
// later in main once the connection is up.
func Setup() {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}
