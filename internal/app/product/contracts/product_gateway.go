package contracts

import (
	"context"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// ProductGateway is the CRUD boundary to the remote product store.
// Failures wrap domain.ErrRemoteFailure.
type ProductGateway interface {
	// List returns every product known to the server.
	List(ctx context.Context) ([]domain.Product, error)

	// Create stores a new product and returns it with its server-assigned ID.
	Create(ctx context.Context, payload domain.ProductPayload) (domain.Product, error)

	// Update replaces every field except the ID.
	Update(ctx context.Context, id int64, payload domain.ProductPayload) (domain.Product, error)

	// Delete removes the product.
	Delete(ctx context.Context, id int64) error

	// Categories returns the category names the server accepts.
	Categories(ctx context.Context) ([]domain.Category, error)
}
