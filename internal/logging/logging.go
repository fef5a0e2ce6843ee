package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"katalog/internal/config"

	"github.com/lmittmann/tint"
)

// New creates the process logger and installs it as the slog default.
func New(cfg config.Log) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, cfg config.Log) *slog.Logger {
	var handler slog.Handler

	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: cfg.Level,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(w),
		})
	}

	log := slog.New(handler).With("service", "katalog")
	slog.SetDefault(log)

	return log
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
