package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils"
	"github.com/google/uuid"
)

// NotificationRepository is the delivery log of order receipts, one row per
// order.
type NotificationRepository interface {
	GetReceiptByOrderID(ctx context.Context, orderID uuid.UUID) (*models.ReceiptNotification, error)
	RecordReceiptAttempt(ctx context.Context, orderID uuid.UUID, recipient string, status models.NotificationStatus, errorMsg string) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) GetReceiptByOrderID(ctx context.Context, orderID uuid.UUID) (*models.ReceiptNotification, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, recipient, status, attempts, error_message, created_at, updated_at, sent_at
		FROM order_receipts
		WHERE order_id = $1`

	var (
		n        models.ReceiptNotification
		errorMsg sql.NullString
		sentAt   sql.NullTime
	)

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, orderID).Scan(
		&n.ID, &n.OrderID, &n.Recipient, &n.Status, &n.Attempts, &errorMsg, &n.CreatedAt, &n.UpdatedAt, &sentAt,
	)
	if err != nil {
		return nil, err
	}

	n.ErrorMessage = errorMsg.String
	if sentAt.Valid {
		n.SentAt = &sentAt.Time
	}

	return &n, nil
}

// RecordReceiptAttempt upserts the order's row, counting the attempt. A row
// that already reached sent keeps its status.
func (r *notificationRepository) RecordReceiptAttempt(ctx context.Context, orderID uuid.UUID, recipient string, status models.NotificationStatus, errorMsg string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_receipts (order_id, recipient, status, attempts, error_message, created_at, updated_at, sent_at)
		VALUES ($1, $2, $3, 1, NULLIF($4, ''), NOW(), NOW(), CASE WHEN $5 THEN NOW() END)
		ON CONFLICT (order_id) DO UPDATE SET
			recipient = EXCLUDED.recipient,
			status = CASE WHEN order_receipts.status = 'sent' THEN order_receipts.status ELSE EXCLUDED.status END,
			attempts = order_receipts.attempts + 1,
			error_message = EXCLUDED.error_message,
			updated_at = NOW(),
			sent_at = COALESCE(order_receipts.sent_at, EXCLUDED.sent_at)`

	if _, err := conn(ctx, r.DB).ExecContext(dbCtx, query, orderID, recipient, status, errorMsg, status == models.StatusSent); err != nil {
		return fmt.Errorf("failed to record receipt attempt: %w", err)
	}

	return nil
}
