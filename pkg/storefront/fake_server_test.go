package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	appErrors "github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/utils/response"
	"github.com/google/uuid"
)

// fakeShop is an in-memory stand-in for the API. Requests for a product in
// failing are rejected; requests for a product in gates block until the
// gate channel is closed. An add for a product in holds is applied at once
// but answered only after the hold channel is closed.
type fakeShop struct {
	mu       sync.Mutex
	products []*models.Product
	cart     *models.Cart
	failing  map[uuid.UUID]bool
	gates    map[uuid.UUID]chan struct{}
	holds    map[uuid.UUID]chan struct{}
	token    string
}

func newFakeShop(t *testing.T, products ...*models.Product) (*fakeShop, *httptest.Server) {
	t.Helper()

	shop := &fakeShop{
		products: products,
		failing:  make(map[uuid.UUID]bool),
		gates:    make(map[uuid.UUID]chan struct{}),
		holds:    make(map[uuid.UUID]chan struct{}),
		token:    "test-token",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, http.StatusOK, shop.products)
	})
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, http.StatusOK, models.LoginResponse{Success: true, Token: shop.token, ExpiresIn: 3600})
	})
	mux.HandleFunc("GET /api/v1/cart", shop.authed(shop.getCart))
	mux.HandleFunc("POST /api/v1/cart", shop.authed(shop.addItem))
	mux.HandleFunc("PUT /api/v1/cart/{id}", shop.authed(shop.updateItem))
	mux.HandleFunc("DELETE /api/v1/cart/{id}", shop.authed(shop.removeItem))
	mux.HandleFunc("POST /api/v1/checkout", shop.authed(shop.checkout))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return shop, server
}

func (f *fakeShop) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}
		next(w, r)
	}
}

func (f *fakeShop) fail(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failing[id] = true
}

func (f *fakeShop) gate(id uuid.UUID) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan struct{})
	f.gates[id] = ch
	return ch
}

func (f *fakeShop) hold(id uuid.UUID) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan struct{})
	f.holds[id] = ch
	return ch
}

// admit waits on the product's gate and reports whether it should fail.
func (f *fakeShop) admit(id uuid.UUID) bool {
	f.mu.Lock()
	ch := f.gates[id]
	fail := f.failing[id]
	f.mu.Unlock()

	if ch != nil {
		<-ch
	}

	return !fail
}

func (f *fakeShop) product(id uuid.UUID) *models.Product {
	for _, p := range f.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakeShop) getCart(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cart == nil {
		response.Error(w, appErrors.NotFoundError("Cart not found"))
		return
	}

	resp := models.CartResponse{ID: f.cart.ID, UserID: f.cart.UserID, Items: []models.CartLine{}}
	for _, item := range f.cart.Items {
		resp.Items = append(resp.Items, models.CartLine{Product: f.product(item.ProductID), Quantity: item.Quantity})
	}
	response.Success(w, http.StatusOK, resp)
}

func (f *fakeShop) mutated(w http.ResponseWriter) {
	cart := *f.cart
	cart.Items = slices.Clone(f.cart.Items)
	response.Success(w, http.StatusOK, models.CartMutationResponse{Message: "Cart updated", Cart: &cart})
}

func (f *fakeShop) addItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body"))
		return
	}

	if !f.admit(req.ProductID) {
		response.Error(w, appErrors.InternalError("boom"))
		return
	}

	f.mu.Lock()

	if f.product(req.ProductID) == nil {
		f.mu.Unlock()
		response.Error(w, appErrors.NotFoundError("Product not found"))
		return
	}

	if f.cart == nil {
		f.cart = &models.Cart{ID: uuid.New(), UserID: uuid.New()}
	}
	if idx := f.cart.Find(req.ProductID); idx >= 0 {
		f.cart.Items[idx].Quantity += req.Quantity
	} else {
		f.cart.Items = append(f.cart.Items, models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	hold := f.holds[req.ProductID]
	f.mu.Unlock()

	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.mutated(w)
}

func (f *fakeShop) updateItem(w http.ResponseWriter, r *http.Request) {
	id, _ := uuid.Parse(r.PathValue("id"))

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body"))
		return
	}

	if !f.admit(id) {
		response.Error(w, appErrors.InternalError("boom"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	if f.cart != nil {
		idx = f.cart.Find(id)
	}
	if idx < 0 {
		response.Error(w, appErrors.NotFoundError("Product not in cart"))
		return
	}

	if *req.Quantity == 0 {
		f.cart.Items = slices.Delete(f.cart.Items, idx, idx+1)
	} else {
		f.cart.Items[idx].Quantity = *req.Quantity
	}

	f.mutated(w)
}

func (f *fakeShop) removeItem(w http.ResponseWriter, r *http.Request) {
	id, _ := uuid.Parse(r.PathValue("id"))

	if !f.admit(id) {
		response.Error(w, appErrors.InternalError("boom"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cart == nil {
		response.Error(w, appErrors.NotFoundError("Cart not found"))
		return
	}

	f.cart.Items = slices.DeleteFunc(f.cart.Items, func(i models.CartItem) bool { return i.ProductID == id })
	f.mutated(w)
}

func (f *fakeShop) checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.CartItems) == 0 {
		response.Error(w, appErrors.ValidationError("Invalid checkout request"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	order := &models.Order{ID: uuid.New(), UserID: f.cart.UserID}
	for _, item := range req.CartItems {
		idx := f.cart.Find(item.ProductID)
		if idx < 0 {
			response.Error(w, appErrors.BadRequestError("Product "+item.ProductID.String()+" not in cart"))
			return
		}
		order.Items = append(order.Items, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
		if item.Quantity >= f.cart.Items[idx].Quantity {
			f.cart.Items = slices.Delete(f.cart.Items, idx, idx+1)
		} else {
			f.cart.Items[idx].Quantity -= item.Quantity
		}
	}

	cart := *f.cart
	cart.Items = slices.Clone(f.cart.Items)
	response.Success(w, http.StatusOK, models.CheckoutResult{Message: "Checkout completed successfully", Cart: &cart, Order: order})
}
