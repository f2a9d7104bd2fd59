package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	"github.com/aaravmahajanofficial/minimal-ecommerce/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendOrderReceipt(ctx context.Context, orderID uuid.UUID) error
}

type notificationService struct {
	receipts     repository.NotificationRepository
	orders       repository.OrderRepository
	users        repository.UserRepository
	products     repository.ProductRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(
	receipts repository.NotificationRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	emailService sendgrid.EmailService,
) NotificationService {
	return &notificationService{
		receipts:     receipts,
		orders:       orders,
		users:        users,
		products:     products,
		emailService: emailService,
	}
}

// SendOrderReceipt emails the buyer a summary of a recorded order, at most
// once per order. Product names are looked up at send time; a product
// deleted since checkout is listed by id.
func (n *notificationService) SendOrderReceipt(ctx context.Context, orderID uuid.UUID) error {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderId", orderID.String()))

	previous, err := n.receipts.GetReceiptByOrderID(ctx, orderID)
	switch {
	case err == nil && previous.Status == models.StatusSent:
		logger.Info("Order receipt already sent, skipping", slog.Int("attempts", previous.Attempts))
		return nil
	case err != nil && !stdErrors.Is(err, sql.ErrNoRows):
		return errors.DatabaseError("Failed to read receipt log").WithError(err)
	}

	order, err := n.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Order not found").WithError(err)
		}
		return errors.DatabaseError("Failed to retrieve order").WithError(err)
	}

	user, err := n.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		return userLookupError(err)
	}

	ids := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.ProductID
	}

	catalog, err := n.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return errors.DatabaseError("Failed to load order products").WithError(err)
	}

	msg := buildReceipt(user, order, catalog)

	if err := n.emailService.Send(ctx, msg); err != nil {
		n.record(ctx, logger, order.ID, user.Email, models.StatusFailed, err.Error())
		return errors.ThirdPartyError("Failed to send order receipt").WithError(err)
	}

	// the email is out, so a logging failure must not trigger a resend
	n.record(ctx, logger, order.ID, user.Email, models.StatusSent, "")

	logger.Info("Order receipt sent", slog.String("to", user.Email))

	return nil
}

func (n *notificationService) record(ctx context.Context, logger *slog.Logger, orderID uuid.UUID, to string, status models.NotificationStatus, errorMsg string) {
	if err := n.receipts.RecordReceiptAttempt(ctx, orderID, to, status, errorMsg); err != nil {
		logger.Warn("Failed to record receipt attempt", slog.String("status", string(status)), slog.String("error", err.Error()))
	}
}

func buildReceipt(user *models.User, order *models.Order, catalog map[uuid.UUID]*models.Product) *models.EmailMessage {
	var text, htmlBody strings.Builder

	fmt.Fprintf(&text, "Hi %s,\n\nThanks for your order %s.\n\n", user.Name, order.ID)
	fmt.Fprintf(&htmlBody, "<p>Hi %s,</p><p>Thanks for your order %s.</p><ul>", html.EscapeString(user.Name), order.ID)

	for _, item := range order.Items {
		name := item.ProductID.String()
		if product, ok := catalog[item.ProductID]; ok {
			name = product.Name
		}

		fmt.Fprintf(&text, "  %d x %s\n", item.Quantity, name)
		fmt.Fprintf(&htmlBody, "<li>%d &times; %s</li>", item.Quantity, html.EscapeString(name))
	}

	fmt.Fprintf(&text, "\nTotal: %s\n", order.Total)
	fmt.Fprintf(&htmlBody, "</ul><p><strong>Total: %s</strong></p>", order.Total)

	return &models.EmailMessage{
		To:          user.Email,
		Subject:     fmt.Sprintf("Your receipt for order %s", order.ID),
		Content:     text.String(),
		HTMLContent: htmlBody.String(),
	}
}
