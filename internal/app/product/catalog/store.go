// Package catalog owns the authoritative in-memory product list and the
// search and page state derived from it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/app/product/queries/list_products"
)

// State is the catalog screen state. FullList is the only source of truth;
// the visible page is always recomputed from it.
type State struct {
	FullList    []domain.Product
	SearchTerm  string
	CurrentPage int
	PageSize    int
}

// View is the derived page shown to the user.
type View struct {
	Items      []domain.Product
	Page       int
	TotalPages int
	TotalItems int
	SearchTerm string
	Loaded     bool // at least one refresh succeeded
}

// Store holds the catalog state. It is safe for concurrent use.
type Store struct {
	gateway contracts.ProductGateway
	logger  *slog.Logger

	mu     sync.RWMutex
	state  State
	view   *list_products.Result
	loaded bool

	// generation numbers each Refresh and Invalidate. A fetched list is
	// applied only if no newer refresh or invalidation came before it.
	generation uint64
	accepted   uint64

	categoriesMu sync.RWMutex
	categories   []domain.Category
	sf           singleflight.Group
}

// NewStore creates an empty store showing page 1.
func NewStore(gateway contracts.ProductGateway, pageSize int, logger *slog.Logger) *Store {
	if pageSize <= 0 {
		pageSize = list_products.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		gateway: gateway,
		logger:  logger.With("component", "catalog"),
		state: State{
			FullList:    []domain.Product{},
			CurrentPage: 1,
			PageSize:    pageSize,
		},
	}
	s.recompute()
	return s
}

// Load fetches categories and products in parallel. A category failure is
// not fatal: the built-in enumeration is used instead.
func (s *Store) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Categories(gctx)
		return nil
	})
	g.Go(func() error {
		return s.Refresh(gctx)
	})

	return g.Wait()
}

// Refresh refetches the full list. On failure the current list is kept.
// A response that was overtaken by a newer refresh, or by a write
// reported through Invalidate, is dropped.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	products, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.Error("refresh failed, keeping previous list", "error", err)
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.accepted {
		s.logger.Debug("dropping stale refresh", "generation", gen, "accepted", s.accepted)
		return nil
	}
	s.accepted = gen

	s.state.FullList = append(make([]domain.Product, 0, len(products)), products...)
	s.loaded = true
	s.recompute()

	s.logger.Debug("catalog refreshed", "count", len(products), "page", s.state.CurrentPage)
	return nil
}

// Invalidate marks every refresh started so far as stale. Callers report a
// successful write this way before reloading.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.accepted = s.generation
}

// SetSearchTerm stores the term and returns to page 1.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchTerm = term
	s.state.CurrentPage = 1
	s.recompute()
}

// SetPage moves to page n if 1 <= n <= TotalPages and reports whether it did.
func (s *Store) SetPage(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setPageLocked(n)
}

// StepBack moves one page back when the current page is past the first.
func (s *Store) StepBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setPageLocked(s.state.CurrentPage - 1)
}

func (s *Store) setPageLocked(n int) bool {
	if n < 1 || n > s.view.TotalPages {
		return false
	}
	s.state.CurrentPage = n
	s.recompute()
	return true
}

// recompute re-runs the search pipeline. Callers hold mu.
// It is invoked only by NewStore, Refresh, SetSearchTerm, and by SetPage and
// StepBack through setPageLocked.
func (s *Store) recompute() {
	s.view = list_products.Paginate(&list_products.Request{
		Products:   s.state.FullList,
		SearchTerm: s.state.SearchTerm,
		Page:       s.state.CurrentPage,
		PageSize:   s.state.PageSize,
	})
	s.state.CurrentPage = s.view.Page
}

// View returns a copy of the visible page.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Product, len(s.view.Items))
	copy(items, s.view.Items)

	return View{
		Items:      items,
		Page:       s.view.Page,
		TotalPages: s.view.TotalPages,
		TotalItems: s.view.TotalItems,
		SearchTerm: s.state.SearchTerm,
		Loaded:     s.loaded,
	}
}

// State returns a copy of the full state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.FullList = append([]domain.Product(nil), s.state.FullList...)
	return st
}

// Find looks a product up in the full list.
func (s *Store) Find(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.state.FullList {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
}

// Categories returns the categories offered by the server, fetched once.
// Concurrent first calls share one request. A failed call is retried on the
// next use.
func (s *Store) Categories(ctx context.Context) []domain.Category {
	s.categoriesMu.RLock()
	cached := s.categories
	s.categoriesMu.RUnlock()
	if cached != nil {
		return append([]domain.Category(nil), cached...)
	}

	v, err, _ := s.sf.Do("categories", func() (any, error) {
		return s.gateway.Categories(ctx)
	})
	if err != nil {
		s.logger.Warn("failed to load categories, using built-in list", "error", err)
		return domain.Categories()
	}

	// An empty answer is cached as the built-in list so the server is
	// asked only once.
	categories, _ := v.([]domain.Category)
	if len(categories) == 0 {
		s.logger.Warn("server offered no categories, using built-in list")
		categories = domain.Categories()
	}

	s.categoriesMu.Lock()
	s.categories = categories
	s.categoriesMu.Unlock()

	return append([]domain.Category(nil), categories...)
}
