package save_product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// Request contains the product to write. A zero ID creates a new product.
type Request struct {
	ID      int64
	Payload domain.ProductPayload
}

// Response describes a successful write.
type Response struct {
	Product domain.Product

	// RefreshErr is set when the write succeeded but the list could not be
	// reloaded afterwards. The previous list is still shown.
	RefreshErr error
}

// ValidationError is returned when the payload fails validation.
// No remote call is made in that case.
type ValidationError struct {
	Result domain.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product: %s", e.Result.Summary())
}

// Interactor handles the save product use case.
type Interactor struct {
	gateway contracts.ProductGateway
	store   *catalog.Store
	logger  *slog.Logger
}

// NewInteractor creates a new save product interactor.
func NewInteractor(gateway contracts.ProductGateway, store *catalog.Store, logger *slog.Logger) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		gateway: gateway,
		store:   store,
		logger:  logger.With("usecase", "save_product"),
	}
}

// Execute validates the payload, writes it and then reloads the list.
// The reload is only issued once the write has returned successfully.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if res := domain.Validate(req.Payload); !res.Valid() {
		return nil, &ValidationError{Result: res}
	}

	// 2. Write through the gateway
	payload := req.Payload.Normalized()
	var (
		product domain.Product
		err     error
	)
	if req.ID == 0 {
		product, err = i.gateway.Create(ctx, payload)
	} else {
		product, err = i.gateway.Update(ctx, req.ID, payload)
	}
	if err != nil {
		i.logger.Error("failed to save product", "id", req.ID, "error", err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	i.logger.Info("product saved", "id", product.ID, "created", req.ID == 0)

	// 3. Drop lists fetched before the write, go back to the first page, reload
	i.store.Invalidate()
	i.store.SetPage(1)
	resp := &Response{Product: product}
	if err := i.store.Refresh(ctx); err != nil {
		resp.RefreshErr = err
	}

	return resp, nil
}
