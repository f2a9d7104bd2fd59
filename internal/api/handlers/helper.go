package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils/response"
)

// authenticatedUser returns the caller's claims and a logger tagged with
// their id, writing a 401 when the request carries no claims.
func authenticatedUser(w http.ResponseWriter, r *http.Request, action string) (*models.Claims, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized attempt: missing user claims", slog.String("action", action))
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, nil, false
	}

	return claims, logger.With(slog.String("userID", claims.UserID.String())), true
}
