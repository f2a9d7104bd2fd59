package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
)

var defaultCatalog = []models.CreateProductRequest{
	{Name: "Espresso Beans 1kg", Price: 24.50},
	{Name: "Pour Over Kettle", Price: 39.99},
	{Name: "Ceramic Mug", Price: 12.00},
	{Name: "Hand Grinder", Price: 64.00},
	{Name: "Paper Filters (100)", Price: 5.25},
	{Name: "Milk Frother", Price: 18.75},
}

func demoUser(email, password string) *models.RegisterRequest {
	return &models.RegisterRequest{Name: "Demo Shopper", Email: email, Password: password}
}

type SeedResult struct {
	ProductsCreated int
	ProductsSkipped int
	UserCreated     bool
}

// Seeder populates an empty store. Entries that already exist are skipped,
// so it can run on every deploy.
type Seeder struct {
	Users    service.UserService
	Products service.ProductService
}

func (s *Seeder) Run(ctx context.Context, user *models.RegisterRequest, catalog []models.CreateProductRequest) (*SeedResult, error) {
	result := &SeedResult{}

	if user != nil {
		_, err := s.Users.Register(ctx, user)
		switch {
		case err == nil:
			result.UserCreated = true
		case errors.HasCode(err, errors.ErrCodeDuplicateEntry):
			slog.Info("Demo user already exists", slog.String("email", user.Email))
		default:
			return nil, fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}

	for i := range catalog {
		product, err := s.Products.CreateProduct(ctx, &catalog[i])
		switch {
		case err == nil:
			result.ProductsCreated++
			slog.Info("Product created", slog.String("id", product.ID.String()), slog.String("name", product.Name))
		case errors.HasCode(err, errors.ErrCodeDuplicateEntry):
			result.ProductsSkipped++
		default:
			return nil, fmt.Errorf("seed product %q: %w", catalog[i].Name, err)
		}
	}

	return result, nil
}
