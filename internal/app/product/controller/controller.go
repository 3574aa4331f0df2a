// Package controller drives the four-state catalog screen: list, create,
// edit and detail. It dispatches user intents to the write use cases and
// the catalog store.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/save_product"
)

// User-facing notices for remote failures.
const (
	NoticeSaveFailed   = "Could not save the product. Please try again."
	NoticeDeleteFailed = "Could not delete the product."
	NoticeLoadFailed   = "Could not load products."
)

// ValidationFailure is returned by Save when the form has errors.
// The controller stays in its form mode with every error revealed.
type ValidationFailure struct {
	Result domain.ValidationResult
}

func (e *ValidationFailure) Error() string {
	return e.Result.Summary()
}

// FormSession is the in-progress create or edit form.
type FormSession struct {
	Draft      domain.Draft
	Validation *domain.ValidationState
	Result     domain.ValidationResult
}

func newFormSession(d domain.Draft) *FormSession {
	return &FormSession{
		Draft:      d,
		Validation: domain.NewValidationState(),
		Result:     domain.Validate(d.Payload()),
	}
}

// VisibleError returns the inline message for f, or "" while f is hidden.
func (f *FormSession) VisibleError(field domain.Field) string {
	if !f.Validation.ShouldShow(field) {
		return ""
	}
	return f.Result.Error(field)
}

// Summary returns the aggregate error text once every error is revealed.
func (f *FormSession) Summary() string {
	if !f.Validation.ShowAllErrors() {
		return ""
	}
	return f.Result.Summary()
}

func (f *FormSession) clone() *FormSession {
	return &FormSession{
		Draft:      f.Draft,
		Validation: f.Validation.Clone(),
		Result:     f.Result,
	}
}

// Snapshot is a consistent copy of the screen state for rendering.
type Snapshot struct {
	Mode    domain.ViewMode
	Current *domain.Product
	Form    *FormSession
	Notice  string
	Busy    bool
	View    catalog.View
}

// Controller holds {mode, current record} and the active form session.
// It is safe for concurrent use; at most one write or manual refresh runs
// at a time.
type Controller struct {
	store         *catalog.Store
	saveProduct   *save_product.Interactor
	deleteProduct *delete_product.Interactor
	logger        *slog.Logger

	busy atomic.Bool

	mu      sync.Mutex
	mode    domain.ViewMode
	current *domain.Product
	form    *FormSession
	notice  string
}

// New creates a controller in list mode.
func New(
	store *catalog.Store,
	saveProduct *save_product.Interactor,
	deleteProduct *delete_product.Interactor,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:         store,
		saveProduct:   saveProduct,
		deleteProduct: deleteProduct,
		logger:        logger.With("component", "controller"),
		mode:          domain.ModeList,
	}
}

// Mode returns the current view mode.
func (c *Controller) Mode() domain.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Snapshot returns the current screen state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{
		Mode:   c.mode,
		Notice: c.notice,
		Busy:   c.busy.Load(),
	}
	if c.current != nil {
		p := *c.current
		s.Current = &p
	}
	if c.form != nil {
		s.Form = c.form.clone()
	}
	c.mu.Unlock()

	s.View = c.store.View()
	return s
}

// DismissNotice clears the notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = ""
}

// StartCreate opens an empty form.
func (c *Controller) StartCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = domain.ModeCreate
	c.current = nil
	c.form = newFormSession(domain.Draft{})
	c.notice = ""
}

// StartEdit opens the form seeded with the product.
func (c *Controller) StartEdit(id int64) error {
	p, err := c.store.Find(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = domain.ModeEdit
	c.current = &p
	c.form = newFormSession(domain.DraftFromProduct(p))
	c.notice = ""
	return nil
}

// StartView shows the product read-only.
func (c *Controller) StartView(id int64) error {
	p, err := c.store.Find(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = domain.ModeDetail
	c.current = &p
	c.form = nil
	c.notice = ""
	return nil
}

// Cancel leaves a form without saving.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toListLocked()
}

// Close leaves the detail view.
func (c *Controller) Close() {
	c.Cancel()
}

func (c *Controller) toListLocked() {
	c.mode = domain.ModeList
	c.current = nil
	c.form = nil
}

// UpdateDraft replaces the form text, marks the given fields touched and
// re-validates. It never submits.
func (c *Controller) UpdateDraft(d domain.Draft, touched ...domain.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mode.IsForm() || c.form == nil {
		return fmt.Errorf("update draft in %s mode: %w", c.mode, domain.ErrInvalidTransition)
	}
	c.form.Draft = d
	for _, f := range touched {
		c.form.Validation.Touch(f)
	}
	c.form.Result = domain.Validate(d.Payload())
	return nil
}

// Touch marks a field as touched.
func (c *Controller) Touch(f domain.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mode.IsForm() || c.form == nil {
		return fmt.Errorf("touch in %s mode: %w", c.mode, domain.ErrInvalidTransition)
	}
	c.form.Validation.Touch(f)
	return nil
}

// Submit saves the form using the raw text the user entered.
func (c *Controller) Submit(ctx context.Context, d domain.Draft) error {
	return c.save(ctx, d, d.Payload())
}

// Save validates and writes the payload. It is legal only in create and
// edit mode. On success the list is reloaded and the mode returns to list.
func (c *Controller) Save(ctx context.Context, payload domain.ProductPayload) error {
	return c.save(ctx, domain.DraftFromPayload(payload), payload)
}

func (c *Controller) save(ctx context.Context, d domain.Draft, payload domain.ProductPayload) error {
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrOperationInFlight
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	if !c.mode.IsForm() || c.form == nil {
		mode := c.mode
		c.mu.Unlock()
		return fmt.Errorf("save in %s mode: %w", mode, domain.ErrInvalidTransition)
	}
	session := c.form
	session.Draft = d
	var id int64
	if c.mode == domain.ModeEdit && c.current != nil {
		id = c.current.ID
	}
	c.mu.Unlock()

	resp, err := c.saveProduct.Execute(ctx, &save_product.Request{ID: id, Payload: payload})

	c.mu.Lock()
	defer c.mu.Unlock()

	var verr *save_product.ValidationError
	switch {
	case errors.As(err, &verr):
		session.Result = verr.Result
		session.Validation.RevealAll()
		return &ValidationFailure{Result: verr.Result}
	case err != nil:
		session.Result = domain.Validate(payload)
		c.notice = NoticeSaveFailed
		return err
	}

	c.notice = ""
	if resp.RefreshErr != nil {
		c.notice = NoticeLoadFailed
	}
	// The user may have moved on while the request was running.
	if c.form == session {
		c.toListLocked()
	}
	return nil
}

// RequestDelete deletes a product after the confirmer approves. A declined
// confirmation changes nothing. Legal in list and detail mode.
func (c *Controller) RequestDelete(ctx context.Context, id int64, confirmer contracts.Confirmer) error {
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrOperationInFlight
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()
	if mode != domain.ModeList && mode != domain.ModeDetail {
		return fmt.Errorf("delete in %s mode: %w", mode, domain.ErrInvalidTransition)
	}

	resp, err := c.deleteProduct.Execute(ctx, &delete_product.Request{ProductID: id, Confirmer: confirmer})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			c.notice = NoticeDeleteFailed
		}
		return err
	}
	if !resp.Confirmed {
		return nil
	}

	c.notice = ""
	if resp.RefreshErr != nil {
		c.notice = NoticeLoadFailed
	}
	if c.current != nil && c.current.ID == id {
		c.toListLocked()
	}
	c.logger.Debug("delete finished", "id", id, "stepped_back", resp.SteppedBack)
	return nil
}

// Refresh reloads the list on demand. It shares the write slot, so it is
// turned away while a save or delete is running and blocks them meanwhile.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrOperationInFlight
	}
	defer c.busy.Store(false)

	err := c.store.Refresh(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notice = NoticeLoadFailed
		return err
	}
	c.notice = ""
	return nil
}

// Search sets the search term and returns to the first page.
func (c *Controller) Search(term string) {
	c.store.SetSearchTerm(term)
}

// GoToPage moves to page n; out of range pages are ignored.
func (c *Controller) GoToPage(n int) bool {
	return c.store.SetPage(n)
}
