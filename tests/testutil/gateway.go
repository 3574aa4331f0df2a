package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// Gateway operations, as recorded by FakeGateway.
const (
	OpList       = "list"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpCategories = "categories"
)

// FakeGateway is an in-memory contracts.ProductGateway with failure injection.
type FakeGateway struct {
	mu         sync.Mutex
	nextID     int64
	products   []domain.Product
	categories []domain.Category
	calls      []string
	failures   map[string]bool
	hooks      map[string]func()
	afterHooks map[string]func()
}

// NewFakeGateway creates a gateway holding the given products.
// Seeded products without an ID get one assigned.
func NewFakeGateway(seed ...domain.Product) *FakeGateway {
	g := &FakeGateway{
		categories: domain.Categories(),
		failures:   make(map[string]bool),
		hooks:      make(map[string]func()),
		afterHooks: make(map[string]func()),
	}
	for _, p := range seed {
		g.insert(p)
	}
	return g
}

func (g *FakeGateway) insert(p domain.Product) domain.Product {
	if p.ID == 0 {
		g.nextID++
		p.ID = g.nextID
	} else if p.ID > g.nextID {
		g.nextID = p.ID
	}
	g.products = append(g.products, p)
	return p
}

// FailOn makes every subsequent call of op fail with a remote error.
func (g *FakeGateway) FailOn(op string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[op] = true
}

// Recover undoes FailOn.
func (g *FakeGateway) Recover(op string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.failures, op)
}

// OnCall runs fn at the start of every call of op, outside the lock.
func (g *FakeGateway) OnCall(op string, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks[op] = fn
}

// AfterCall runs fn once a call of op has built its result and before it
// returns. Only List honours it: the list is snapshotted, then fn runs.
func (g *FakeGateway) AfterCall(op string, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.afterHooks[op] = fn
}

// HoldNextList makes the next List call take its snapshot and then wait
// until release is called. held is closed once the snapshot is taken.
// Later List calls are not held.
func (g *FakeGateway) HoldNextList() (held <-chan struct{}, release func()) {
	entered := make(chan struct{})
	gate := make(chan struct{})

	var once sync.Once
	g.AfterCall(OpList, func() {
		first := false
		once.Do(func() {
			first = true
			close(entered)
		})
		if first {
			<-gate
		}
	})

	var releaseOnce sync.Once
	return entered, func() { releaseOnce.Do(func() { close(gate) }) }
}

// SetCategories replaces the category list served by Categories.
func (g *FakeGateway) SetCategories(categories ...domain.Category) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.categories = categories
}

// Calls returns the recorded operations in order.
func (g *FakeGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// CallCount returns how many times op was called.
func (g *FakeGateway) CallCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (g *FakeGateway) ResetCalls() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = nil
}

// Products returns the stored products.
func (g *FakeGateway) Products() []domain.Product {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Product(nil), g.products...)
}

// begin records the call, runs its hook and reports an injected failure.
func (g *FakeGateway) begin(op string) error {
	g.mu.Lock()
	g.calls = append(g.calls, op)
	hook := g.hooks[op]
	fail := g.failures[op]
	g.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fail {
		return fmt.Errorf("fake %s: %w", op, domain.ErrRemoteFailure)
	}
	return nil
}

// List implements contracts.ProductGateway.
func (g *FakeGateway) List(ctx context.Context) ([]domain.Product, error) {
	if err := g.begin(OpList); err != nil {
		return nil, err
	}
	products := g.Products()

	g.mu.Lock()
	after := g.afterHooks[OpList]
	g.mu.Unlock()
	if after != nil {
		after()
	}
	return products, nil
}

// Create implements contracts.ProductGateway.
func (g *FakeGateway) Create(ctx context.Context, payload domain.ProductPayload) (domain.Product, error) {
	if err := g.begin(OpCreate); err != nil {
		return domain.Product{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.insert(fromPayload(0, payload)), nil
}

// Update implements contracts.ProductGateway.
func (g *FakeGateway) Update(ctx context.Context, id int64, payload domain.ProductPayload) (domain.Product, error) {
	if err := g.begin(OpUpdate); err != nil {
		return domain.Product{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.products {
		if g.products[i].ID == id {
			g.products[i] = fromPayload(id, payload)
			return g.products[i], nil
		}
	}
	return domain.Product{}, fmt.Errorf("fake update %d: %w", id, domain.ErrRemoteFailure)
}

// Delete implements contracts.ProductGateway.
func (g *FakeGateway) Delete(ctx context.Context, id int64) error {
	if err := g.begin(OpDelete); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.products {
		if g.products[i].ID == id {
			g.products = append(g.products[:i], g.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fake delete %d: %w", id, domain.ErrRemoteFailure)
}

// Categories implements contracts.ProductGateway.
func (g *FakeGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := g.begin(OpCategories); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Category(nil), g.categories...), nil
}

// fromPayload stores the payload as received; the client is expected to
// have normalized it.
func fromPayload(id int64, p domain.ProductPayload) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    int(p.Quantity),
		Description: p.Description,
		Category:    p.Category,
	}
}
