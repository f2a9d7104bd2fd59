package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Writer returns stdout, or stdout plus a rotated file when cfg.File is set.
// The returned closer releases the file handle.
func Writer(cfg config.LogConfig) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, io.NopCloser(nil)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return io.MultiWriter(os.Stdout, rotator), rotator
}

func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Setup builds the JSON logger for cfg and installs it as the slog default.
func Setup(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	w, closer := Writer(cfg)

	logger := New(w, cfg.Level)
	slog.SetDefault(logger)

	return logger, closer
}
