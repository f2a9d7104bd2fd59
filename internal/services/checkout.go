package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/metrics"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	"github.com/google/uuid"
)

const checkoutMessage = "Checkout completed successfully"

// ReceiptNotifier schedules the receipt email of a completed order.
type ReceiptNotifier interface {
	EnqueueOrderReceipt(ctx context.Context, orderID uuid.UUID) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResult, error)
}

type checkoutService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	tx       repository.Transactor
	receipts ReceiptNotifier
}

func NewCheckoutService(
	users repository.UserRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	tx repository.Transactor,
	receipts ReceiptNotifier,
) CheckoutService {
	return &checkoutService{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		tx:       tx,
		receipts: receipts,
	}
}

// Checkout locks the user's cart, prices the requested items from the
// catalog, trims the cart and records the order in one transaction. Prices
// are read from the database, never from the product cache.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	result := &models.CheckoutResult{Message: checkoutMessage}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return userLookupError(err)
		}

		cart, err := s.carts.GetCartForUpdate(ctx, userID)
		if err != nil {
			return cartLookupError(err)
		}

		ids := make([]uuid.UUID, len(req.CartItems))
		for i, item := range req.CartItems {
			ids[i] = item.ProductID
		}

		catalog, err := s.products.GetProductsByIDs(ctx, ids)
		if err != nil {
			return errors.DatabaseError("Failed to load products").WithError(err)
		}

		plan, err := planCheckout(cart.Items, req.CartItems, catalog)
		if err != nil {
			return err
		}

		cart.Items = plan.CartItems
		if err := s.carts.UpdateCartItems(ctx, cart); err != nil {
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		order := &models.Order{
			UserID: userID,
			Items:  plan.OrderItems,
			Total:  plan.Total,
		}
		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return errors.DatabaseError("Failed to create order").WithError(err)
		}

		result.User = user
		result.Cart = cart
		result.Order = order

		return nil
	})
	if err != nil {
		appErr := asAppError(err, "Checkout failed")
		if e, _ := errors.IsAppError(appErr); e.StatusCode < 500 {
			metrics.RecordCheckout(metrics.CheckoutRejected)
		} else {
			metrics.RecordCheckout(metrics.CheckoutFailed)
		}
		return nil, appErr
	}

	metrics.RecordCheckout(metrics.CheckoutSucceeded)

	logger.Info("Checkout completed",
		slog.String("orderId", result.Order.ID.String()),
		slog.String("total", result.Order.Total.String()),
		slog.Int("remainingLines", len(result.Cart.Items)),
	)

	if err := s.receipts.EnqueueOrderReceipt(ctx, result.Order.ID); err != nil {
		logger.Error("Failed to enqueue order receipt", slog.String("orderId", result.Order.ID.String()), slog.String("error", err.Error()))
	}

	return result, nil
}
