package m_product

import (
	"fmt"
	"math"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// ToDomain converts a wire record into a domain product.
// Unknown categories are rejected rather than passed through.
func (d *Data) ToDomain() (domain.Product, error) {
	category, err := domain.ParseCategory(d.Category)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", d.ID, err)
	}

	p := domain.Product{
		ID:       d.ID,
		Name:     d.Name,
		Price:    d.Price,
		Quantity: d.Quantity,
		Category: category,
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	return p, nil
}

// FromDomain converts a domain product into its wire record.
func FromDomain(p domain.Product) *Data {
	d := &Data{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Category: string(p.Category),
	}
	if p.Description != "" {
		desc := p.Description
		d.Description = &desc
	}
	return d
}

// FromPayload builds a request body. The payload is expected to be validated,
// so Quantity is a whole number.
func FromPayload(p domain.ProductPayload) *PayloadData {
	p = p.Normalized()
	return &PayloadData{
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    int(math.Round(p.Quantity)),
		Description: p.Description,
		Category:    string(p.Category),
	}
}

// ToPayload converts a request body back into a domain payload.
func (d *PayloadData) ToPayload() domain.ProductPayload {
	return domain.ProductPayload{
		Name:        d.Name,
		Price:       d.Price,
		Quantity:    float64(d.Quantity),
		Description: d.Description,
		Category:    domain.Category(d.Category),
	}
}
