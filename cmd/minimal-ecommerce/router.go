package main

import (
	"net/http"

	"github.com/aaravmahajanofficial/minimal-ecommerce/docs"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/handlers"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/metrics"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type appServices struct {
	Users    service.UserService
	Products service.ProductService
	Carts    service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
}

func newRouter(cfg *config.Config, jwtKey []byte, s *appServices, healthHandler http.Handler) http.Handler {
	userHandler := handlers.NewUserHandler(s.Users)
	productHandler := handlers.NewProductHandler(s.Products)
	cartHandler := handlers.NewCartHandler(s.Carts)
	checkoutHandler := handlers.NewCheckoutHandler(s.Checkout)
	orderHandler := handlers.NewOrderHandler(s.Orders)
	themeHandler := handlers.NewThemeHandler(cfg.IsProduction())
	auth := middleware.NewAuthMiddleware(jwtKey)

	docs.SwaggerInfo.Host = ""

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	mux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	mux.HandleFunc("GET /api/v1/users/profile", auth.Authenticate(userHandler.Profile()))

	mux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())

	mux.HandleFunc("GET /api/v1/cart", auth.Authenticate(cartHandler.GetCart()))
	mux.HandleFunc("POST /api/v1/cart", auth.Authenticate(cartHandler.AddItem()))
	mux.HandleFunc("PUT /api/v1/cart/{id}", auth.Authenticate(cartHandler.UpdateQuantity()))
	mux.HandleFunc("DELETE /api/v1/cart/{id}", auth.Authenticate(cartHandler.RemoveItem()))

	mux.HandleFunc("POST /api/v1/checkout", auth.Authenticate(checkoutHandler.Checkout()))

	mux.HandleFunc("GET /api/v1/orders", auth.Authenticate(orderHandler.ListOrders()))
	mux.HandleFunc("GET /api/v1/orders/{id}", auth.Authenticate(orderHandler.GetOrder()))

	mux.HandleFunc("GET /api/v1/theme", themeHandler.GetTheme())
	mux.HandleFunc("POST /api/v1/theme", themeHandler.SetTheme())

	mux.Handle("GET /health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.CORS(cfg.CORS)(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)
	handler = middleware.Logging(handler)

	return handler
}
