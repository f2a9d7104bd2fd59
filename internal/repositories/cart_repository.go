package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils"
	"github.com/google/uuid"
)

// CartRepository stores one cart document per user. GetCartForUpdate locks
// the row until the surrounding transaction ends, which serialises every
// mutation of the same user's cart.
type CartRepository interface {
	EnsureCart(ctx context.Context, userID uuid.UUID) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpdateCartItems(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) EnsureCart(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, items, created_at, updated_at)
		VALUES ($1, '[]'::jsonb, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := conn(ctx, r.DB).ExecContext(dbCtx, query, userID); err != nil {
		return fmt.Errorf("failed to ensure cart: %w", err)
	}

	return nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM carts
		WHERE user_id = $1`

	return r.getCart(ctx, query, userID)
}

func (r *cartRepository) GetCartForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM carts
		WHERE user_id = $1
		FOR UPDATE`

	return r.getCart(ctx, query, userID)
}

func (r *cartRepository) getCart(ctx context.Context, query string, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	var itemsJSON []byte

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return cart, nil
}

func (r *cartRepository) UpdateCartItems(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, itemsJSON, cart.ID).Scan(&cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}
