package presenter

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-catalog/internal/models"
)

type prefixResolver string

func (p prefixResolver) PublicURL(key string) string { return string(p) + "/" + key }

func value(attribute, v string) *models.AttributeValue {
	return &models.AttributeValue{Value: v, Attribute: &models.Attribute{Name: attribute}}
}

func sampleProduct() models.Product {
	category := models.Category{Name: "Shoes", Slug: "shoes"}
	return models.Product{
		Name:     "Trail Runner",
		Slug:     "trail-runner",
		PID:      "TR0001",
		Category: &category,
		AttributeValues: []models.ProductAttributeValue{
			{AttributeValue: value("material", "mesh")},
		},
		Lines: []models.ProductLine{
			{
				Price:    decimal.RequireFromString("12.5"),
				SKU:      "TR-2",
				Order:    2,
				IsActive: true,
				Images:   []models.ProductImage{{URL: "b.jpg", Order: 1}},
			},
			{
				Price:    decimal.NewFromInt(10),
				SKU:      "TR-1",
				Order:    1,
				IsActive: true,
				Images: []models.ProductImage{
					{URL: "a2.jpg", Order: 2},
					{URL: "a1.jpg", Order: 1, AlternativeText: "front"},
				},
				AttributeValues: []models.ProductLineAttributeValue{
					{AttributeValue: value("color", "red")},
					{AttributeValue: value("size", "42")},
				},
			},
		},
	}
}

func TestFlattenAttributes(t *testing.T) {
	got := FlattenAttributes([]AttributePair{
		{Name: "color", Value: "red"},
		{Name: "size", Value: "42"},
		{Name: "color", Value: "blue"},
	})
	assert.Equal(t, map[string]string{"color": "blue", "size": "42"}, got)

	assert.Empty(t, FlattenAttributes(nil))
}

func TestProduct_FullRepresentation(t *testing.T) {
	p := sampleProduct()
	view := New(prefixResolver("https://cdn.example.com")).Product(&p)

	assert.Equal(t, "trail-runner", view.Slug)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Shoes", *view.Category)
	assert.Nil(t, view.Brand)
	assert.Equal(t, map[string]string{"material": "mesh"}, view.Attribute)

	require.Len(t, view.Lines, 2)
	line := view.Lines[1]
	assert.Equal(t, "10.00", line.Price)
	assert.Equal(t, map[string]string{"color": "red", "size": "42"}, line.Specification)
	require.Len(t, line.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a2.jpg", line.Images[0].URL)
	assert.Equal(t, "12.50", view.Lines[0].Price)
	assert.Empty(t, view.Lines[0].Specification)
}

func TestProduct_JSONKeys(t *testing.T) {
	p := sampleProduct()
	raw, err := json.Marshal(New(nil).Product(&p))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"name", "slug", "pid", "description", "is_digital", "category", "brand", "created_at", "product_line", "attribute"} {
		assert.Contains(t, doc, key)
	}

	lines := doc["product_line"].([]interface{})
	line := lines[0].(map[string]interface{})
	for _, key := range []string{"price", "sku", "stock_qty", "order", "weight", "product_image", "specification"} {
		assert.Contains(t, line, key)
	}
}

func TestCategoryProduct_PromotesFirstLine(t *testing.T) {
	p := sampleProduct()
	view := New(nil).CategoryProduct(&p)

	require.NotNil(t, view.Price)
	assert.Equal(t, "10.00", *view.Price)
	require.NotNil(t, view.Image)
	assert.Equal(t, "a1.jpg", *view.Image)
}

func TestCategoryProduct_SkipsInactiveLines(t *testing.T) {
	p := sampleProduct()
	p.Lines[1].IsActive = false

	view := New(nil).CategoryProduct(&p)
	require.NotNil(t, view.Price)
	assert.Equal(t, "12.50", *view.Price)
	require.NotNil(t, view.Image)
	assert.Equal(t, "b.jpg", *view.Image)
}

func TestCategoryProduct_NoLines(t *testing.T) {
	p := models.Product{Name: "Empty", Slug: "empty", PID: "E1"}
	view := New(nil).CategoryProduct(&p)
	assert.Nil(t, view.Price)
	assert.Nil(t, view.Image)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"price"`)
	assert.NotContains(t, string(raw), `"image"`)
}

func TestCategoryProduct_NoFirstImage(t *testing.T) {
	p := sampleProduct()
	p.Lines[1].Images = []models.ProductImage{{URL: "late.jpg", Order: 3}}

	view := New(nil).CategoryProduct(&p)
	require.NotNil(t, view.Price)
	assert.Nil(t, view.Image)
}

func TestCategoriesAndBrands(t *testing.T) {
	cats := Categories([]models.Category{{Name: "Shoes", Slug: "shoes"}})
	assert.Equal(t, []CategoryView{{Name: "Shoes", Slug: "shoes"}}, cats)

	raw, err := json.Marshal(cats)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"category_name":"Shoes","slug":"shoes"}]`, string(raw))

	b := models.Brand{Name: "Northwind"}
	brands := Brands([]models.Brand{b})
	require.Len(t, brands, 1)
	assert.Equal(t, "Northwind", brands[0].Name)
	assert.Empty(t, Brands(nil))
}
