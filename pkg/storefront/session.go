package storefront

import (
	"context"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OpKind string

const (
	OpAdd    OpKind = "add"
	OpSet    OpKind = "set"
	OpRemove OpKind = "remove"
)

// Notification reports a background cart request that failed. Its change
// has already been withdrawn from the view.
type Notification struct {
	Op        OpKind
	ProductID uuid.UUID
	Quantity  int
	Err       error
}

type overlay struct {
	seq       uint64
	op        OpKind
	productID uuid.UUID
	quantity  int
}

// CartView is the cart as the user should see it: the last server
// snapshot with every unconfirmed change applied in order.
type CartView struct {
	Items   []models.CartLine
	Total   models.Money
	Pending int
}

type job struct {
	ctx  context.Context
	o    overlay
	send func(context.Context) (*models.CartMutationResponse, error)
}

// Session keeps an optimistic copy of the user's cart. Mutations show up
// in View immediately and are sent in the background one at a time, in
// the order they were made; a failed request reverts only its own change.
type Session struct {
	client *Client

	mu       sync.Mutex
	catalog  map[uuid.UUID]*models.Product
	base     []models.CartLine
	pending  []overlay
	nextSeq  uint64
	queue    []job
	draining bool
	inflight sync.WaitGroup

	notifications chan Notification
}

const notificationBuffer = 32

// NewSession loads the catalog and the current cart. A user without a cart
// starts from an empty one.
func NewSession(ctx context.Context, client *Client) (*Session, error) {
	s := &Session{
		client:        client,
		catalog:       make(map[uuid.UUID]*models.Product),
		notifications: make(chan Notification, notificationBuffer),
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Notifications delivers failed background requests. Notifications are
// dropped when the buffer is full.
func (s *Session) Notifications() <-chan Notification {
	return s.notifications
}

// Refresh reloads the catalog and, once background requests have settled,
// replaces the base cart with the server's. When a change is submitted
// while the cart is being fetched the base is left to that change's
// response.
func (s *Session) Refresh(ctx context.Context) error {
	s.Wait()

	s.mu.Lock()
	seq := s.nextSeq
	s.mu.Unlock()

	products, err := s.client.Products(ctx)
	if err != nil {
		return err
	}

	var lines []models.CartLine
	cart, err := s.client.Cart(ctx)
	switch {
	case err == nil:
		lines = cart.Items
	case IsNotFound(err):
	default:
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		s.catalog[p.ID] = p
	}

	if s.nextSeq == seq {
		s.base = slices.Clone(lines)
	}

	return nil
}

func (s *Session) Products() []*models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*models.Product, 0, len(s.catalog))
	for _, p := range s.catalog {
		products = append(products, p)
	}

	return products
}

func (s *Session) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := slices.Clone(s.base)
	for _, o := range s.pending {
		lines = s.apply(lines, o)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return CartView{Items: lines, Total: models.NewMoney(total), Pending: len(s.pending)}
}

// apply mirrors the server's cart rules for one change. Unknown products
// are ignored for add.
func (s *Session) apply(lines []models.CartLine, o overlay) []models.CartLine {
	idx := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.Product.ID == o.productID })

	switch o.op {
	case OpAdd:
		if idx >= 0 {
			lines[idx].Quantity += o.quantity
			return lines
		}
		if product, ok := s.catalog[o.productID]; ok {
			lines = append(lines, models.CartLine{Product: product, Quantity: o.quantity})
		}
	case OpSet:
		if idx < 0 {
			return lines
		}
		if o.quantity <= 0 {
			return slices.Delete(lines, idx, idx+1)
		}
		lines[idx].Quantity = o.quantity
	case OpRemove:
		return slices.DeleteFunc(lines, func(l models.CartLine) bool { return l.Product.ID == o.productID })
	}

	return lines
}

func (s *Session) AddItem(ctx context.Context, productID uuid.UUID, quantity int) {
	s.submit(ctx, overlay{op: OpAdd, productID: productID, quantity: quantity}, func(ctx context.Context) (*models.CartMutationResponse, error) {
		return s.client.AddItem(ctx, productID, quantity)
	})
}

// SetQuantity sets a line's quantity; zero removes the line.
func (s *Session) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) {
	s.submit(ctx, overlay{op: OpSet, productID: productID, quantity: quantity}, func(ctx context.Context) (*models.CartMutationResponse, error) {
		return s.client.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *Session) RemoveItem(ctx context.Context, productID uuid.UUID) {
	s.submit(ctx, overlay{op: OpRemove, productID: productID}, func(ctx context.Context) (*models.CartMutationResponse, error) {
		return s.client.RemoveItem(ctx, productID)
	})
}

func (s *Session) submit(ctx context.Context, o overlay, send func(context.Context) (*models.CartMutationResponse, error)) {
	s.inflight.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	o.seq = s.nextSeq
	s.pending = append(s.pending, o)
	s.queue = append(s.queue, job{ctx: ctx, o: o, send: send})

	if !s.draining {
		s.draining = true
		go s.drain()
	}
}

// drain sends queued requests until the queue is empty. Only one drain
// runs at a time, so the server sees changes in submission order and every
// response is the newest cart.
func (s *Session) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		j := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.run(j)
	}
}

func (s *Session) run(j job) {
	defer s.inflight.Done()

	resp, err := j.send(j.ctx)

	s.mu.Lock()
	s.pending = slices.DeleteFunc(s.pending, func(p overlay) bool { return p.seq == j.o.seq })
	if err == nil && resp.Cart != nil {
		s.rebase(resp.Cart)
	}
	s.mu.Unlock()

	if err != nil {
		s.notify(Notification{Op: j.o.op, ProductID: j.o.productID, Quantity: j.o.quantity, Err: err})
	}
}

// rebase adopts a server cart. Must be called with mu held.
func (s *Session) rebase(cart *models.Cart) {
	lines := make([]models.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := s.catalog[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{Product: product, Quantity: item.Quantity})
	}

	s.base = lines
}

func (s *Session) notify(n Notification) {
	select {
	case s.notifications <- n:
	default:
	}
}

// Wait blocks until every background request has settled.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Checkout waits for pending changes, then buys items, or the whole cart
// when items is empty. The base cart is replaced with the trimmed cart.
func (s *Session) Checkout(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutResult, error) {
	s.Wait()

	if len(items) == 0 {
		for _, line := range s.View().Items {
			items = append(items, models.CheckoutItem{ProductID: line.Product.ID, Quantity: line.Quantity})
		}
	}

	result, err := s.client.Checkout(ctx, items)
	if err != nil {
		return nil, err
	}

	if result.Cart != nil {
		s.mu.Lock()
		s.rebase(result.Cart)
		s.mu.Unlock()
	}

	return result, nil
}
