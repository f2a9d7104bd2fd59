package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/queue"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
	"github.com/hibiken/asynq"
)

// Consumer handles background tasks.
type Consumer struct {
	notifications service.NotificationService
}

func NewConsumer(notifications service.NotificationService) *Consumer {
	return &Consumer{notifications: notifications}
}

func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeOrderReceipt, c.HandleOrderReceipt)
}

// HandleOrderReceipt sends the receipt email for one order. Tasks that can
// never succeed, a bad payload or a missing order, are not retried.
func (c *Consumer) HandleOrderReceipt(ctx context.Context, task *asynq.Task) error {
	taskID, _ := asynq.GetTaskID(ctx)
	logger := slog.Default().With(slog.String("task_type", task.Type()), slog.String("task_id", taskID))
	ctx = middleware.WithLogger(ctx, logger)

	payload, err := queue.ParseOrderReceiptPayload(task)
	if err != nil {
		logger.Warn("Dropping malformed receipt task", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if err := c.notifications.SendOrderReceipt(ctx, payload.OrderID); err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			logger.Warn("Dropping receipt task for missing order", slog.String("orderId", payload.OrderID.String()))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		logger.Error("Failed to send order receipt", slog.String("orderId", payload.OrderID.String()), slog.String("error", err.Error()))
		return err
	}

	return nil
}
