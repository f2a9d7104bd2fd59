package worker

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/queue"
	"github.com/hibiken/asynq"
)

type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewService(cfg *config.Config, consumer *Consumer) *Service {
	errorHandler := asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		slog.Error("Task failed",
			slog.String("task_type", task.Type()),
			slog.Int("retry", retried),
			slog.Int("max_retry", maxRetry),
			slog.String("error", err.Error()),
		)
	})

	mux := asynq.NewServeMux()
	consumer.Register(mux)

	return &Service{
		server: asynq.NewServer(queue.RedisOpt(cfg.RedisConnect), queue.ServerConfig(cfg.Queue, errorHandler)),
		mux:    mux,
	}
}

// Run processes tasks until ctx is cancelled, then waits for in-flight
// tasks to finish.
func (s *Service) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}

	slog.Info("Worker started")

	<-ctx.Done()

	slog.Info("Worker shutting down")
	s.server.Shutdown()

	return nil
}
