package service

import (
	"fmt"
	"slices"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type checkoutPlan struct {
	CartItems  []models.CartItem
	OrderItems []models.OrderItem
	Total      models.Money
}

// planCheckout validates every requested item against the cart and the
// catalog and prices it before any line is trimmed, so a rejected request
// leaves cartItems untouched. The returned CartItems is a new slice.
//
// A request for at least the line's quantity removes the line, anything
// less decrements it.
func planCheckout(cartItems []models.CartItem, requested []models.CheckoutItem, catalog map[uuid.UUID]*models.Product) (*checkoutPlan, error) {
	if len(requested) == 0 {
		return nil, errors.ValidationError("Cart items are required for checkout")
	}

	inCart := make(map[uuid.UUID]struct{}, len(cartItems))
	for _, item := range cartItems {
		inCart[item.ProductID] = struct{}{}
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(requested))

	for _, item := range requested {
		if item.Quantity <= 0 || item.Quantity > models.MaxItemQuantity {
			return nil, errors.AddValidationError("quantity", fmt.Sprintf("product %s must have a quantity between 1 and %d", item.ProductID, models.MaxItemQuantity))
		}

		product, exists := catalog[item.ProductID]
		if !exists {
			return nil, errors.BadRequestError(fmt.Sprintf("Product %s does not exist", item.ProductID))
		}

		if _, ok := inCart[item.ProductID]; !ok {
			return nil, errors.BadRequestError(fmt.Sprintf("Product %s not in cart", item.ProductID))
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	if total.GreaterThan(models.MaxAmount) {
		return nil, errors.BadRequestError(fmt.Sprintf("Order total exceeds %s", models.MaxAmount.StringFixed(2)))
	}

	trimmed := slices.Clone(cartItems)

	for _, item := range requested {
		idx := slices.IndexFunc(trimmed, func(line models.CartItem) bool {
			return line.ProductID == item.ProductID
		})
		if idx < 0 {
			continue
		}

		if item.Quantity >= trimmed[idx].Quantity {
			trimmed = slices.Delete(trimmed, idx, idx+1)
		} else {
			trimmed[idx].Quantity -= item.Quantity
		}
	}

	if trimmed == nil {
		trimmed = []models.CartItem{}
	}

	return &checkoutPlan{
		CartItems:  trimmed,
		OrderItems: orderItems,
		Total:      models.NewMoney(total),
	}, nil
}
