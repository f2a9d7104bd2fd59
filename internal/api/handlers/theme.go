package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	ThemeCookieName = "theme"
	themeCookieAge  = 365 * 24 * time.Hour
)

type ThemeHandler struct {
	secure    bool
	validator *validator.Validate
}

// NewThemeHandler marks the cookie Secure when secure is set, which should
// be the case in production.
func NewThemeHandler(secure bool) *ThemeHandler {
	return &ThemeHandler{secure: secure, validator: validator.New()}
}

// GetTheme godoc
//	@Summary		Get the UI theme
//	@Description	Returns the theme cookie, light when unset or unrecognised.
//	@Tags			Theme
//	@Produce		json
//	@Success		200	{object}	models.ThemeResponse	"Theme"
//	@Router			/theme [get]
func (h *ThemeHandler) GetTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme := models.ThemeLight

		if cookie, err := r.Cookie(ThemeCookieName); err == nil && models.Theme(cookie.Value) == models.ThemeDark {
			theme = models.ThemeDark
		}

		response.Success(w, http.StatusOK, models.ThemeResponse{Theme: theme, Message: "Theme retrieved successfully"})
	}
}

// SetTheme godoc
//	@Summary		Set the UI theme
//	@Tags			Theme
//	@Accept			json
//	@Produce		json
//	@Param			theme	body		models.ThemeRequest		true	"light or dark"
//	@Success		200		{object}	models.ThemeResponse	"Theme stored"
//	@Failure		400		{object}	response.ErrorResponse	"Theme must be light or dark"
//	@Router			/theme [post]
func (h *ThemeHandler) SetTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ThemeRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()).WithError(err))
			return
		}

		if err := h.validator.Struct(req); err != nil {
			logger.Warn("Invalid theme", slog.String("theme", string(req.Theme)))
			response.Error(w, errors.ValidationError(`Theme must be either "light" or "dark"`))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     ThemeCookieName,
			Value:    string(req.Theme),
			Path:     "/",
			MaxAge:   int(themeCookieAge.Seconds()),
			Expires:  time.Now().Add(themeCookieAge),
			SameSite: http.SameSiteLaxMode,
			Secure:   h.secure,
		})

		response.Success(w, http.StatusOK, models.ThemeResponse{Theme: req.Theme, Message: "Theme set successfully"})
	}
}
