package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	receiptMaxRetry = 5
	receiptTimeout  = 30 * time.Second
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client enqueues background jobs. A disabled client accepts every job and
// drops it, so the API runs without a worker.
type Client struct {
	client  enqueuer
	enabled bool
}

func NewClient(cfg *config.Config) *Client {
	if !cfg.Queue.Enabled {
		return &Client{}
	}

	return &Client{client: asynq.NewClient(RedisOpt(cfg.RedisConnect)), enabled: true}
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	return c.client.Close()
}

// EnqueueOrderReceipt schedules the receipt email for orderID.
func (c *Client) EnqueueOrderReceipt(ctx context.Context, orderID uuid.UUID) error {
	if !c.Enabled() {
		middleware.LoggerFromContext(ctx).Debug("Queue disabled, skipping order receipt", slog.String("orderId", orderID.String()))
		return nil
	}

	task, err := NewOrderReceiptTask(OrderReceiptPayload{OrderID: orderID})
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(receiptMaxRetry),
		asynq.Timeout(receiptTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue order receipt: %w", err)
	}

	middleware.LoggerFromContext(ctx).Debug("Order receipt enqueued", slog.String("orderId", orderID.String()), slog.String("taskId", info.ID))

	return nil
}

func RedisOpt(cfg config.RedisConnect) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// ServerConfig builds the asynq server settings for the worker process.
func ServerConfig(cfg config.QueueConfig, errorHandler asynq.ErrorHandler) asynq.Config {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	return asynq.Config{
		Concurrency:  concurrency,
		Queues:       map[string]int{DefaultQueue: 1},
		ErrorHandler: errorHandler,
		Logger:       newLogger(),
	}
}
