package service

import (
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(price float64) *models.Product {
	return &models.Product{ID: uuid.New(), Name: "p", Price: models.NewMoneyFromFloat(price)}
}

func catalogOf(products ...*models.Product) map[uuid.UUID]*models.Product {
	m := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestPlanCheckout(t *testing.T) {
	a := product(10)
	b := product(2.5)

	t.Run("Full quantity empties the line", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 5}}

		plan, err := planCheckout(cart, []models.CheckoutItem{{ProductID: a.ID, Quantity: 5}}, catalogOf(a))

		require.NoError(t, err)
		assert.Empty(t, plan.CartItems)
		assert.NotNil(t, plan.CartItems)
		assert.Equal(t, "50.00", plan.Total.String())
		assert.Equal(t, []models.OrderItem{{ProductID: a.ID, Quantity: 5}}, plan.OrderItems)
	})

	t.Run("Partial quantity decrements the line", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 5}}

		plan, err := planCheckout(cart, []models.CheckoutItem{{ProductID: a.ID, Quantity: 2}}, catalogOf(a))

		require.NoError(t, err)
		assert.Equal(t, []models.CartItem{{ProductID: a.ID, Quantity: 3}}, plan.CartItems)
		assert.Equal(t, "20.00", plan.Total.String())
		// input untouched
		assert.Equal(t, 5, cart[0].Quantity)
	})

	t.Run("Over-request removes the line and charges the requested quantity", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 1}}

		plan, err := planCheckout(cart, []models.CheckoutItem{{ProductID: a.ID, Quantity: 7}}, catalogOf(a, b))

		require.NoError(t, err)
		assert.Equal(t, []models.CartItem{{ProductID: b.ID, Quantity: 1}}, plan.CartItems)
		assert.Equal(t, "70.00", plan.Total.String())
	})

	t.Run("Multiple items keep cart order", func(t *testing.T) {
		c := product(1)
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 1}, {ProductID: b.ID, Quantity: 4}, {ProductID: c.ID, Quantity: 2}}

		plan, err := planCheckout(cart, []models.CheckoutItem{
			{ProductID: b.ID, Quantity: 2},
			{ProductID: a.ID, Quantity: 1},
		}, catalogOf(a, b, c))

		require.NoError(t, err)
		assert.Equal(t, []models.CartItem{{ProductID: b.ID, Quantity: 2}, {ProductID: c.ID, Quantity: 2}}, plan.CartItems)
		assert.Equal(t, "15.00", plan.Total.String())
	})

	t.Run("Product not in cart", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 5}}

		plan, err := planCheckout(cart, []models.CheckoutItem{
			{ProductID: a.ID, Quantity: 1},
			{ProductID: b.ID, Quantity: 1},
		}, catalogOf(a, b))

		require.Error(t, err)
		assert.Nil(t, plan)
		assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
		assert.Contains(t, err.Error(), "Product "+b.ID.String()+" not in cart")
		assert.Equal(t, 5, cart[0].Quantity)
	})

	t.Run("Product missing from catalog", func(t *testing.T) {
		gone := uuid.New()
		cart := []models.CartItem{{ProductID: gone, Quantity: 1}}

		_, err := planCheckout(cart, []models.CheckoutItem{{ProductID: gone, Quantity: 1}}, catalogOf(a))

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
		assert.Contains(t, err.Error(), "Product "+gone.String()+" does not exist")
	})

	t.Run("Unknown product everywhere reports does not exist", func(t *testing.T) {
		unknown := uuid.New()
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 1}}

		_, err := planCheckout(cart, []models.CheckoutItem{{ProductID: unknown, Quantity: 1}}, catalogOf(a))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Empty request", func(t *testing.T) {
		_, err := planCheckout(nil, nil, catalogOf(a))

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: 1}}

		_, err := planCheckout(cart, []models.CheckoutItem{{ProductID: a.ID, Quantity: 0}}, catalogOf(a))

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})
	t.Run("Quantity above the line cap", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: a.ID, Quantity: models.MaxItemQuantity}}

		_, err := planCheckout(cart, []models.CheckoutItem{{ProductID: a.ID, Quantity: models.MaxItemQuantity + 1}}, catalogOf(a))

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("Total beyond the storable amount", func(t *testing.T) {
		pricey := product(9_000_000_000)
		cart := []models.CartItem{{ProductID: pricey.ID, Quantity: 2}}

		plan, err := planCheckout(cart, []models.CheckoutItem{{ProductID: pricey.ID, Quantity: 2}}, catalogOf(pricey))

		require.Error(t, err)
		assert.Nil(t, plan)
		assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
		assert.Equal(t, []models.CartItem{{ProductID: pricey.ID, Quantity: 2}}, cart)
	})
}
