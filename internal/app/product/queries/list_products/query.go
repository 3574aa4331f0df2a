package list_products

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// DefaultPageSize is used when a request carries no positive page size.
const DefaultPageSize = 5

// Request contains the full record list plus search and pagination parameters.
type Request struct {
	Products   []domain.Product
	SearchTerm string
	Page       int
	PageSize   int
}

// Result is one page of the filtered list.
type Result struct {
	Items      []domain.Product
	TotalPages int
	TotalItems int // after filtering
	Page       int // requested page, or 1 when it was out of range
}

// Paginate filters the list by the search term and slices out the requested page.
// A page outside [1, TotalPages] falls back to page 1. The input slice is not modified.
func Paginate(req *Request) *Result {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := filter(req.Products, req.SearchTerm)

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := req.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]domain.Product, end-start)
	copy(items, filtered[start:end])

	return &Result{
		Items:      items,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		Page:       page,
	}
}

// filter keeps records whose name or category contains term, ignoring case.
func filter(products []domain.Product, term string) []domain.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return products
	}

	folder := cases.Fold()
	needle := folder.String(term)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(folder.String(p.Name), needle) ||
			strings.Contains(folder.String(string(p.Category)), needle) {
			out = append(out, p)
		}
	}
	return out
}
