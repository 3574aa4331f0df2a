package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Boundaries enforced by Validate. All bounds are inclusive.
const (
	MinNameLength        = 3
	MaxNameLength        = 100
	MaxPrice             = 999_999_999
	MaxQuantity          = 99_999
	MaxDescriptionLength = 500
)

// Validation messages.
const (
	MsgNameRequired       = "name is required"
	MsgNameLength         = "name must be between 3 and 100 characters"
	MsgPriceNotNumber     = "price must be a number"
	MsgPriceRange         = "price must be greater than 0 and at most 999,999,999"
	MsgQuantityNotInteger = "quantity must be a whole number"
	MsgQuantityRange      = "quantity must be between 0 and 99,999"
	MsgDescriptionLength  = "description must be at most 500 characters"
	MsgCategoryRequired   = "category is required"
	MsgCategoryUnknown    = "category is not recognized"
)

// ValidationResult holds per-field error messages for one payload.
type ValidationResult struct {
	FieldErrors   map[Field]string
	InvalidFields []Field
}

// Valid reports whether no rule failed.
func (r ValidationResult) Valid() bool {
	return len(r.InvalidFields) == 0
}

// Error returns the message for f, or "" when f is valid.
func (r ValidationResult) Error(f Field) string {
	return r.FieldErrors[f]
}

// Summary renders the aggregate error count shown above the form actions.
func (r ValidationResult) Summary() string {
	switch n := len(r.InvalidFields); n {
	case 0:
		return ""
	case 1:
		return "1 error remains, check the highlighted fields"
	default:
		return fmt.Sprintf("%d errors remain, check the highlighted fields", n)
	}
}

// Validate checks every field of p independently. It has no side effects.
func Validate(p ProductPayload) ValidationResult {
	res := ValidationResult{FieldErrors: make(map[Field]string)}

	add := func(f Field, msg string) {
		if msg == "" {
			return
		}
		res.FieldErrors[f] = msg
		res.InvalidFields = append(res.InvalidFields, f)
	}

	add(FieldName, validateName(p.Name))
	add(FieldPrice, validatePrice(p.Price))
	add(FieldQuantity, validateQuantity(p.Quantity))
	add(FieldDescription, validateDescription(p.Description))
	add(FieldCategory, validateCategory(p.Category))

	return res
}

func validateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return MsgNameRequired
	}
	if n := utf8.RuneCountInString(trimmed); n < MinNameLength || n > MaxNameLength {
		return MsgNameLength
	}
	return ""
}

func validatePrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return MsgPriceNotNumber
	}
	if price <= 0 || price > MaxPrice {
		return MsgPriceRange
	}
	return ""
}

func validateQuantity(qty float64) string {
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty != math.Trunc(qty) {
		return MsgQuantityNotInteger
	}
	if qty < 0 || qty > MaxQuantity {
		return MsgQuantityRange
	}
	return ""
}

func validateDescription(desc string) string {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return MsgDescriptionLength
	}
	return ""
}

func validateCategory(c Category) string {
	if strings.TrimSpace(string(c)) == "" {
		return MsgCategoryRequired
	}
	if _, err := ParseCategory(string(c)); err != nil {
		return MsgCategoryUnknown
	}
	return ""
}
