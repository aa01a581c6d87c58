package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/rogerio-castellano/stockroom/internal/config"
)

// NewSlogLogger creates a new slog logger with the given configuration and
// installs it as the default logger.
func NewSlogLogger(cfg config.Log) *slog.Logger {
	log := slog.New(newHandler(os.Stdout, cfg))
	slog.SetDefault(log)
	return log
}

func newHandler(w io.Writer, cfg config.Log) slog.Handler {
	if strings.EqualFold(cfg.Format, "JSON") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.SlogLevel(),
			AddSource: cfg.AddSource,
		})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      cfg.SlogLevel(),
		AddSource:  cfg.AddSource,
		TimeFormat: time.RFC3339,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
}
