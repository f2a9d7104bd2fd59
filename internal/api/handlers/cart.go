package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the authenticated user's cart with every line expanded to its product.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse		"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"User or cart not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := authenticatedUser(w, r, "get cart")
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds quantity to the product's line, creating the cart and the line when needed.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest			true	"Product and quantity"
//	@Success		200		{object}	models.CartMutationResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"User or product not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := authenticatedUser(w, r, "add to cart")
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, incremented, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item", slog.String("productId", req.ProductID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		message := "Product added to cart"
		if incremented {
			message = "Product quantity updated in cart"
		}

		logger.Info(message, slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, models.CartMutationResponse{Message: message, Cart: cart})
	}
}

// UpdateQuantity godoc
//	@Summary		Set a line's quantity
//	@Description	Sets the quantity of a product already in the cart; 0 removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID (UUID)"	Format(uuid)
//	@Param			item	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200		{object}	models.CartMutationResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"Cart not found or product not in cart"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := authenticatedUser(w, r, "update cart")
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, productID, *req.Quantity)
		if err != nil {
			logger.Warn("Failed to update quantity", slog.String("productId", productID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.CartMutationResponse{Message: "Cart updated", Cart: cart})
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Description	Removes every line for the product. Removing an absent product succeeds.
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.CartMutationResponse	"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse		"Invalid product ID format"
//	@Failure		401	{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse		"Cart not found"
//	@Failure		500	{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := authenticatedUser(w, r, "remove from cart")
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			logger.Warn("Failed to remove item", slog.String("productId", productID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item removed from cart", slog.String("productId", productID.String()))
		response.Success(w, http.StatusOK, models.CartMutationResponse{Message: "Item removed from cart", Cart: cart})
	}
}
