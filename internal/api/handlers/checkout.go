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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Check out cart items
//	@Description	Charges the listed products at catalog price, trims them from the cart and records an order. Nothing changes when any item is rejected.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Items to check out"
//	@Success		200			{object}	models.CheckoutResult	"Remaining cart, recorded order and user"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error, product not in cart or not in catalog"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse	"User or cart not found"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := authenticatedUser(w, r, "checkout")
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout succeeded", slog.String("orderId", result.Order.ID.String()))
		response.Success(w, http.StatusOK, result)
	}
}
