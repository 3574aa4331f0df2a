package domain

import (
	"fmt"
	"strings"
)

// Field identifies one editable attribute of a product.
type Field string

// Field names used for validation and form binding.
const (
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldQuantity    Field = "quantity"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// Fields lists every editable field in display order.
var Fields = []Field{FieldName, FieldPrice, FieldQuantity, FieldDescription, FieldCategory}

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFashion     Category = "FASHION"
	CategoryFood        Category = "FOOD"
	CategoryHome        Category = "HOME"
	CategoryOther       Category = "OTHER"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFashion,
		CategoryFood,
		CategoryHome,
		CategoryOther,
	}
}

// ParseCategory normalizes raw input and rejects unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryFood, CategoryHome, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Product is a catalog record as stored by the remote service.
// ID is assigned by the server and never changes.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Quantity    int
	Description string
	Category    Category
}

// Payload returns the writable part of the product.
func (p Product) Payload() ProductPayload {
	return ProductPayload{
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    float64(p.Quantity),
		Description: p.Description,
		Category:    p.Category,
	}
}

// ProductPayload is a product without its ID: the body of create and update calls.
// Quantity is kept as float64 so that fractional input can be rejected by Validate.
type ProductPayload struct {
	Name        string
	Price       float64
	Quantity    float64
	Description string
	Category    Category
}

// Normalized trims free-text fields and canonicalises a recognised category
// the way they are sent to the server.
func (p ProductPayload) Normalized() ProductPayload {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if c, err := ParseCategory(string(p.Category)); err == nil {
		p.Category = c
	}
	return p
}
