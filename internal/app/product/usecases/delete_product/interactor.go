package delete_product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// Request contains the product to delete and the gate that must approve it.
type Request struct {
	ProductID int64
	Confirmer contracts.Confirmer
}

// Response describes the outcome of a delete request.
type Response struct {
	// Confirmed is false when the user declined; nothing else happened then.
	Confirmed bool

	// SteppedBack is set when the deleted row was the only one on its page
	// and the view moved to the previous page.
	SteppedBack bool

	// RefreshErr is set when the delete succeeded but the list could not be
	// reloaded afterwards.
	RefreshErr error
}

// Prompt is the confirmation question asked before deleting p.
func Prompt(p domain.Product) string {
	return fmt.Sprintf("Delete %q? This cannot be undone.", p.Name)
}

// Interactor handles the delete product use case.
type Interactor struct {
	gateway contracts.ProductGateway
	store   *catalog.Store
	logger  *slog.Logger
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(gateway contracts.ProductGateway, store *catalog.Store, logger *slog.Logger) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		gateway: gateway,
		store:   store,
		logger:  logger.With("usecase", "delete_product"),
	}
}

// Execute asks for confirmation, deletes the product and reloads the list.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Load the record being deleted
	product, err := i.store.Find(req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Confirmation gate
	ok, err := req.Confirmer.Confirm(ctx, Prompt(product))
	if err != nil {
		return nil, fmt.Errorf("failed to confirm delete: %w", err)
	}
	if !ok {
		return &Response{}, nil
	}

	// 3. Remote delete
	if err := i.gateway.Delete(ctx, product.ID); err != nil {
		i.logger.Error("failed to delete product", "id", product.ID, "error", err)
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	i.logger.Info("product deleted", "id", product.ID)

	// 4. Drop lists fetched before the delete, leave a page that is about to
	// become empty, then reload
	i.store.Invalidate()
	resp := &Response{Confirmed: true}
	view := i.store.View()
	if view.Page > 1 && len(view.Items) == 1 && view.Items[0].ID == product.ID {
		resp.SteppedBack = i.store.StepBack()
	}
	if err := i.store.Refresh(ctx); err != nil {
		resp.RefreshErr = err
	}

	return resp, nil
}
