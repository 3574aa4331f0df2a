package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() ProductPayload {
	return ProductPayload{
		Name:        "Test Product",
		Price:       100000,
		Quantity:    10,
		Description: "x",
		Category:    CategoryElectronics,
	}
}

func TestValidate_ValidPayload(t *testing.T) {
	res := Validate(validPayload())

	assert.True(t, res.Valid())
	assert.Empty(t, res.FieldErrors)
	assert.Empty(t, res.InvalidFields)
	assert.Empty(t, res.Summary())
}

func TestValidate_IsDeterministic(t *testing.T) {
	payloads := []ProductPayload{
		validPayload(),
		{},
		{Name: "  ab ", Price: math.NaN(), Quantity: 1.5, Category: "TOYS"},
		{Name: strings.Repeat("n", 101), Price: -1, Quantity: -1, Description: strings.Repeat("d", 501)},
	}

	for _, p := range payloads {
		assert.Equal(t, Validate(p), Validate(p))
	}
}

func TestValidate_RejectionScenario(t *testing.T) {
	res := Validate(ProductPayload{Name: "", Price: 0, Quantity: 0, Category: ""})

	require.False(t, res.Valid())
	assert.Equal(t, MsgNameRequired, res.Error(FieldName))
	assert.Equal(t, MsgPriceRange, res.Error(FieldPrice))
	assert.Equal(t, MsgCategoryRequired, res.Error(FieldCategory))
	assert.Empty(t, res.Error(FieldQuantity))
	assert.Equal(t, []Field{FieldName, FieldPrice, FieldCategory}, res.InvalidFields)
	assert.Equal(t, "3 errors remain, check the highlighted fields", res.Summary())
}

func TestValidate_Name(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", MsgNameRequired},
		{"whitespace only", "    ", MsgNameRequired},
		{"length 2", "ab", MsgNameLength},
		{"length 3", "abc", ""},
		{"length 100", strings.Repeat("a", 100), ""},
		{"length 101", strings.Repeat("a", 101), MsgNameLength},
		{"trimmed before counting", "  ab  ", MsgNameLength},
		{"multibyte counted as runes", "Bàn", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Name = tt.input
			assert.Equal(t, tt.wantMsg, Validate(p).Error(FieldName))
		})
	}
}

func TestValidate_PriceBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		wantMsg string
	}{
		{"one passes", 1, ""},
		{"max passes", 999_999_999, ""},
		{"fraction passes", 0.5, ""},
		{"zero fails", 0, MsgPriceRange},
		{"negative fails", -10, MsgPriceRange},
		{"above max fails", 1_000_000_000, MsgPriceRange},
		{"NaN fails", math.NaN(), MsgPriceNotNumber},
		{"Inf fails", math.Inf(1), MsgPriceNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Price = tt.price
			assert.Equal(t, tt.wantMsg, Validate(p).Error(FieldPrice))
		})
	}
}

func TestValidate_QuantityBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		qty     float64
		wantMsg string
	}{
		{"zero passes", 0, ""},
		{"max passes", 99_999, ""},
		{"negative fails", -1, MsgQuantityRange},
		{"above max fails", 100_000, MsgQuantityRange},
		{"fraction fails", 2.5, MsgQuantityNotInteger},
		{"NaN fails", math.NaN(), MsgQuantityNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Quantity = tt.qty
			assert.Equal(t, tt.wantMsg, Validate(p).Error(FieldQuantity))
		})
	}
}

func TestValidate_Description(t *testing.T) {
	p := validPayload()

	p.Description = ""
	assert.Empty(t, Validate(p).Error(FieldDescription), "description is optional")

	p.Description = strings.Repeat("d", 500)
	assert.Empty(t, Validate(p).Error(FieldDescription))

	p.Description = strings.Repeat("d", 501)
	assert.Equal(t, MsgDescriptionLength, Validate(p).Error(FieldDescription))
}

func TestValidate_Category(t *testing.T) {
	p := validPayload()

	for _, c := range Categories() {
		p.Category = c
		assert.Empty(t, Validate(p).Error(FieldCategory), c)
	}

	p.Category = ""
	assert.Equal(t, MsgCategoryRequired, Validate(p).Error(FieldCategory))

	p.Category = "TOYS"
	assert.Equal(t, MsgCategoryUnknown, Validate(p).Error(FieldCategory))

	for _, raw := range []Category{"electronics", " HOME ", "\tfood"} {
		p.Category = raw
		assert.Empty(t, Validate(p).Error(FieldCategory), "case and whitespace are ignored: %q", raw)
	}

	p.Category = "   "
	assert.Equal(t, MsgCategoryRequired, Validate(p).Error(FieldCategory))
}

func TestValidate_AllRulesEvaluated(t *testing.T) {
	res := Validate(ProductPayload{
		Name:        "x",
		Price:       0,
		Quantity:    -5,
		Description: strings.Repeat("d", 600),
		Category:    "NOPE",
	})

	assert.Equal(t, Fields, res.InvalidFields)
	assert.Len(t, res.FieldErrors, 5)
	assert.Equal(t, "5 errors remain, check the highlighted fields", res.Summary())
}

func TestValidationResult_SummarySingular(t *testing.T) {
	p := validPayload()
	p.Price = 0

	assert.Equal(t, "1 error remains, check the highlighted fields", Validate(p).Summary())
}
