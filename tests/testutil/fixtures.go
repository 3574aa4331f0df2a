package testutil

import (
	"fmt"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// ProductBuilder helps create products for tests with a fluent interface
type ProductBuilder struct {
	name        string
	price       float64
	quantity    int
	description string
	category    domain.Category
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:        "Test Product",
		price:       100000,
		quantity:    10,
		description: "x",
		category:    domain.CategoryElectronics,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithPrice sets the product price
func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

// WithQuantity sets the product quantity
func (b *ProductBuilder) WithQuantity(quantity int) *ProductBuilder {
	b.quantity = quantity
	return b
}

// WithDescription sets the product description
func (b *ProductBuilder) WithDescription(description string) *ProductBuilder {
	b.description = description
	return b
}

// WithCategory sets the product category
func (b *ProductBuilder) WithCategory(category domain.Category) *ProductBuilder {
	b.category = category
	return b
}

// Build creates the product without an ID.
func (b *ProductBuilder) Build() domain.Product {
	return domain.Product{
		Name:        b.name,
		Price:       b.price,
		Quantity:    b.quantity,
		Description: b.description,
		Category:    b.category,
	}
}

// BuildPayload creates the create/update payload.
func (b *ProductBuilder) BuildPayload() domain.ProductPayload {
	return b.Build().Payload()
}

// Products returns n distinct products named "Product 01", "Product 02", ...
func Products(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewProductBuilder().WithName(fmt.Sprintf("Product %02d", i)).Build())
	}
	return out
}
