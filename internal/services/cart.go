package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/metrics"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	// AddItem reports true when an existing line was incremented rather
	// than a new line appended.
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, bool, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.Cart, error)
}

type cartService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	tx       repository.Transactor
}

func NewCartService(users repository.UserRepository, products repository.ProductRepository, carts repository.CartRepository, tx repository.Transactor) CartService {
	return &cartService{users: users, products: products, carts: carts, tx: tx}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, userLookupError(err)
	}

	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, cartLookupError(err)
	}

	ids := make([]uuid.UUID, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	catalog, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart products").WithError(err)
	}

	resp := &models.CartResponse{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]models.CartLine, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}

	total := decimal.Zero

	for _, item := range cart.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			logger.Warn("Cart references a deleted product", slog.String("productId", item.ProductID.String()))
			continue
		}

		resp.Items = append(resp.Items, models.CartLine{Product: product, Quantity: item.Quantity})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	resp.Total = models.NewMoney(total)

	return resp, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, bool, error) {
	if req.Quantity <= 0 {
		return nil, false, errors.AddValidationError("quantity", "must be greater than 0")
	}

	if req.Quantity > models.MaxItemQuantity {
		return nil, false, errors.AddValidationError("quantity", fmt.Sprintf("must not exceed %d", models.MaxItemQuantity))
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, false, userLookupError(err)
	}

	if _, err := s.products.GetProductByID(ctx, req.ProductID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, false, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, false, errors.DatabaseError("Failed to retrieve product").WithError(err)
	}

	var (
		cart        *models.Cart
		incremented bool
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.carts.EnsureCart(ctx, userID); err != nil {
			return errors.DatabaseError("Failed to create cart").WithError(err)
		}

		var err error
		cart, err = s.carts.GetCartForUpdate(ctx, userID)
		if err != nil {
			return cartLookupError(err)
		}

		if idx := cart.Find(req.ProductID); idx >= 0 {
			if cart.Items[idx].Quantity > models.MaxItemQuantity-req.Quantity {
				return errors.AddValidationError("quantity", fmt.Sprintf("cart line would exceed %d", models.MaxItemQuantity))
			}
			cart.Items[idx].Quantity += req.Quantity
			incremented = true
		} else {
			cart.Items = append(cart.Items, models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
		}

		if err := s.carts.UpdateCartItems(ctx, cart); err != nil {
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, false, asAppError(err, "Failed to update cart")
	}

	metrics.RecordCartMutation(metrics.CartAdd)

	return cart, incremented, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.GetCartForUpdate(ctx, userID)
		if err != nil {
			return cartLookupError(err)
		}

		before := len(cart.Items)
		cart.Items = slices.DeleteFunc(cart.Items, func(item models.CartItem) bool {
			return item.ProductID == productID
		})

		if len(cart.Items) == before {
			return nil
		}

		if err := s.carts.UpdateCartItems(ctx, cart); err != nil {
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update cart")
	}

	metrics.RecordCartMutation(metrics.CartRemove)

	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, errors.AddValidationError("quantity", "must not be negative")
	}

	if quantity > models.MaxItemQuantity {
		return nil, errors.AddValidationError("quantity", fmt.Sprintf("must not exceed %d", models.MaxItemQuantity))
	}

	var cart *models.Cart

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.GetCartForUpdate(ctx, userID)
		if err != nil {
			return cartLookupError(err)
		}

		idx := cart.Find(productID)
		if idx < 0 {
			return errors.NotFoundError("Product not in cart")
		}

		if quantity == 0 {
			cart.Items = slices.Delete(cart.Items, idx, idx+1)
		} else {
			cart.Items[idx].Quantity = quantity
		}

		if err := s.carts.UpdateCartItems(ctx, cart); err != nil {
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update cart")
	}

	metrics.RecordCartMutation(metrics.CartUpdate)

	return cart, nil
}

func cartLookupError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Cart not found").WithError(err)
	}

	return errors.DatabaseError("Failed to retrieve cart").WithError(err)
}

// asAppError keeps AppErrors raised inside a transaction and wraps anything
// else, such as a failed commit.
func asAppError(err error, message string) error {
	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	return errors.DatabaseError(message).WithError(err)
}
