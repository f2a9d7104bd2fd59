package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("storefront: status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("storefront: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

type Option func(*Client)

// WithHTTPClient replaces the default traced client. Pass one with a
// cookie jar to keep the theme cookie between calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client is a typed wrapper over the shop's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("storefront: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("storefront: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storefront: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("storefront: decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("storefront: decode data: %w", err)
	}

	return nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", &models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)

	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Products(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) Cart(ctx context.Context) (*models.CartResponse, error) {
	var cart models.CartResponse
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*models.CartMutationResponse, error) {
	var resp models.CartMutationResponse
	req := &models.AddItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*models.CartMutationResponse, error) {
	var resp models.CartMutationResponse
	req := &models.UpdateQuantityRequest{Quantity: &quantity}
	if err := c.do(ctx, http.MethodPut, "/cart/"+productID.String(), req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) RemoveItem(ctx context.Context, productID uuid.UUID) (*models.CartMutationResponse, error) {
	var resp models.CartMutationResponse
	if err := c.do(ctx, http.MethodDelete, "/cart/"+productID.String(), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Checkout(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutResult, error) {
	var result models.CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/checkout", &models.CheckoutRequest{CartItems: items}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// OrderPage is one page of the order history.
type OrderPage struct {
	Orders   []*models.Order `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

func (c *Client) Orders(ctx context.Context, page, pageSize int) (*OrderPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	path := "/orders"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result OrderPage
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Order(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) Theme(ctx context.Context) (models.Theme, error) {
	var resp models.ThemeResponse
	if err := c.do(ctx, http.MethodGet, "/theme", nil, &resp); err != nil {
		return "", err
	}

	return resp.Theme, nil
}

func (c *Client) SetTheme(ctx context.Context, theme models.Theme) error {
	return c.do(ctx, http.MethodPost, "/theme", &models.ThemeRequest{Theme: theme}, nil)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
