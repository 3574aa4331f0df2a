package domain

import (
	"math"
	"strconv"
	"strings"
)

// Draft is the raw, unparsed text of the product form as the user typed it.
type Draft struct {
	Name        string
	Price       string
	Quantity    string
	Description string
	Category    string
}

// DraftFromProduct seeds a form with an existing record.
func DraftFromProduct(p Product) Draft {
	return Draft{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
		Category:    string(p.Category),
	}
}

// DraftFromPayload renders a payload back into form text.
func DraftFromPayload(p ProductPayload) Draft {
	return Draft{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.FormatFloat(p.Quantity, 'f', -1, 64),
		Description: p.Description,
		Category:    string(p.Category),
	}
}

// Payload converts the draft into a payload. Numbers that do not parse
// become NaN so that Validate reports them; the category is upper-cased
// but not checked here.
func (d Draft) Payload() ProductPayload {
	return ProductPayload{
		Name:        d.Name,
		Price:       parseNumber(d.Price),
		Quantity:    parseNumber(d.Quantity),
		Description: d.Description,
		Category:    Category(strings.ToUpper(strings.TrimSpace(d.Category))),
	}
}

func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
