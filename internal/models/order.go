package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Order is an order-history record. It copies product ids and quantities
// at checkout time and is never modified afterwards.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     Money       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=10000"`
}

// CheckoutRequest lists the cart lines to buy. Each product may appear
// once; a request repeating a product id is rejected with 400.
type CheckoutRequest struct {
	CartItems []CheckoutItem `json:"cartItems" validate:"required,min=1,unique=ProductID,dive"`
}

type CheckoutResult struct {
	Message string `json:"message"`
	Cart    *Cart  `json:"cart"`
	Order   *Order `json:"order"`
	User    *User  `json:"user"`
}
