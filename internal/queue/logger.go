package queue

import (
	"fmt"
	"log/slog"
	"os"
)

// slogAdapter routes asynq's internal logging through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func newLogger() *slogAdapter {
	return &slogAdapter{logger: slog.Default().With(slog.String("component", "asynq"))}
}

func (l *slogAdapter) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *slogAdapter) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l *slogAdapter) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *slogAdapter) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }

func (l *slogAdapter) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
