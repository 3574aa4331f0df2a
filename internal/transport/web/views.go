package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/controller"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Empty list texts.
const (
	EmptyCatalog = "No products yet"
	EmptySearch  = "No products match your search"
)

var fieldLabels = map[domain.Field]string{
	domain.FieldName:        "Name",
	domain.FieldPrice:       "Price",
	domain.FieldQuantity:    "Quantity",
	domain.FieldDescription: "Description",
	domain.FieldCategory:    "Category",
}

// views holds one parsed template set per page; each set is the layout plus
// the page's "content" block.
type views map[string]*template.Template

func parseViews() (views, error) {
	v := make(views)
	for _, name := range []string{"list", "form", "detail", "confirm", "login"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		v[name] = t
	}
	return v, nil
}

func (v views) render(name string, data *page) ([]byte, error) {
	t, ok := v[name]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type page struct {
	Title    string
	SignedIn bool
	Username string
	Notice   string

	List    *listView
	Form    *formView
	Detail  *detailView
	Confirm *confirmView
}

type rowView struct {
	ID       int64
	Name     string
	Price    string
	Quantity int
	Category string
}

type pageLink struct {
	N      int
	Active bool
}

type listView struct {
	Search         string
	Rows           []rowView
	EmptyText      string
	Page           int
	TotalPages     int
	Pages          []pageLink
	ShowPagination bool
	HasPrev        bool
	HasNext        bool
	Prev           int
	Next           int
}

func newListView(v catalog.View) *listView {
	lv := &listView{
		Search:         v.SearchTerm,
		Page:           v.Page,
		TotalPages:     v.TotalPages,
		ShowPagination: v.TotalPages > 1,
		HasPrev:        v.Page > 1,
		HasNext:        v.Page < v.TotalPages,
		Prev:           v.Page - 1,
		Next:           v.Page + 1,
		EmptyText:      EmptyCatalog,
	}
	if v.SearchTerm != "" {
		lv.EmptyText = EmptySearch
	}
	for _, p := range v.Items {
		lv.Rows = append(lv.Rows, rowView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    formatPrice(p.Price),
			Quantity: p.Quantity,
			Category: string(p.Category),
		})
	}
	for n := 1; n <= v.TotalPages; n++ {
		lv.Pages = append(lv.Pages, pageLink{N: n, Active: n == v.Page})
	}
	return lv
}

type optionView struct {
	Value    string
	Selected bool
}

type fieldView struct {
	Name    string
	Label   string
	Value   string
	Error   string
	Options []optionView
}

type formView struct {
	Heading string
	Fields  []fieldView
	Touched []string
	Summary string
	Busy    bool
}

func newFormView(s controller.Snapshot, categories []domain.Category) *formView {
	form := s.Form
	fv := &formView{
		Heading: "Add product",
		Summary: form.Summary(),
		Busy:    s.Busy,
	}
	if s.Mode == domain.ModeEdit {
		fv.Heading = "Edit product"
	}

	values := map[domain.Field]string{
		domain.FieldName:        form.Draft.Name,
		domain.FieldPrice:       form.Draft.Price,
		domain.FieldQuantity:    form.Draft.Quantity,
		domain.FieldDescription: form.Draft.Description,
		domain.FieldCategory:    form.Draft.Category,
	}

	for _, f := range domain.Fields {
		field := fieldView{
			Name:  string(f),
			Label: fieldLabels[f],
			Value: values[f],
			Error: form.VisibleError(f),
		}
		if f == domain.FieldCategory {
			for _, c := range categories {
				field.Options = append(field.Options, optionView{
					Value:    string(c),
					Selected: string(c) == form.Draft.Category,
				})
			}
		}
		if form.Validation.Touched(f) {
			fv.Touched = append(fv.Touched, string(f))
		}
		fv.Fields = append(fv.Fields, field)
	}
	return fv
}

type detailView struct {
	ID          int64
	Name        string
	Price       string
	Quantity    int
	Category    string
	Description string
}

func newDetailView(p domain.Product) *detailView {
	return &detailView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       formatPrice(p.Price),
		Quantity:    p.Quantity,
		Category:    string(p.Category),
		Description: p.Description,
	}
}

type confirmView struct {
	ID     int64
	Prompt string
	Busy   bool
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
