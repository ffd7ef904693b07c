// internal/presenter/presenter.go

// Package presenter shapes stored catalog records into the JSON documents of
// the public read API.
package presenter

import (
	"time"

	"github.com/javajoker/storefront-catalog/internal/models"
)

// URLResolver turns a stored image location into a URL clients can fetch.
type URLResolver interface {
	PublicURL(key string) string
}

type identity struct{}

func (identity) PublicURL(key string) string { return key }

type CategoryView struct {
	Name string `json:"category_name"`
	Slug string `json:"slug"`
}

type BrandView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ImageView struct {
	AlternativeText string `json:"alternative_text"`
	URL             string `json:"url"`
	Order           uint   `json:"order"`
}

type ProductLineView struct {
	Price         string            `json:"price"`
	SKU           string            `json:"sku"`
	StockQty      int               `json:"stock_qty"`
	Order         uint              `json:"order"`
	Weight        float64           `json:"weight"`
	Images        []ImageView       `json:"product_image"`
	Specification map[string]string `json:"specification"`
}

type ProductView struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	PID         string            `json:"pid"`
	Description string            `json:"description"`
	IsDigital   bool              `json:"is_digital"`
	Category    *string           `json:"category"`
	Brand       *string           `json:"brand"`
	CreatedAt   time.Time         `json:"created_at"`
	Lines       []ProductLineView `json:"product_line"`
	Attribute   map[string]string `json:"attribute"`
}

// ProductCategoryView is the compact listing form. Price and Image come from
// the first active line and are omitted when the product has none.
type ProductCategoryView struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PID       string    `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
	Price     *string   `json:"price,omitempty"`
	Image     *string   `json:"image,omitempty"`
}

type Presenter struct {
	urls URLResolver
}

// New returns a Presenter that resolves image URLs through urls. A nil
// resolver leaves stored URLs untouched.
func New(urls URLResolver) *Presenter {
	if urls == nil {
		urls = identity{}
	}
	return &Presenter{urls: urls}
}

func Categories(categories []models.Category) []CategoryView {
	out := make([]CategoryView, len(categories))
	for i, c := range categories {
		out[i] = CategoryView{Name: c.Name, Slug: c.Slug}
	}
	return out
}

func Brands(brands []models.Brand) []BrandView {
	out := make([]BrandView, len(brands))
	for i, b := range brands {
		out[i] = BrandView{ID: b.ID.String(), Name: b.Name}
	}
	return out
}

func (p *Presenter) Products(products []models.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i := range products {
		out[i] = p.Product(&products[i])
	}
	return out
}

// Product renders the full representation. Lines and images are emitted in
// the order they were loaded in.
func (p *Presenter) Product(m *models.Product) ProductView {
	view := ProductView{
		Name:        m.Name,
		Slug:        m.Slug,
		PID:         m.PID,
		Description: m.Description,
		IsDigital:   m.IsDigital,
		CreatedAt:   m.CreatedAt,
		Lines:       make([]ProductLineView, 0, len(m.Lines)),
		Attribute:   FlattenAttributes(productPairs(m.AttributeValues)),
	}
	if m.Category != nil {
		view.Category = &m.Category.Name
	}
	if m.Brand != nil {
		view.Brand = &m.Brand.Name
	}

	for i := range m.Lines {
		view.Lines = append(view.Lines, p.line(&m.Lines[i]))
	}
	return view
}

func (p *Presenter) line(l *models.ProductLine) ProductLineView {
	view := ProductLineView{
		Price:         l.Price.StringFixed(2),
		SKU:           l.SKU,
		StockQty:      l.StockQty,
		Order:         l.Order,
		Weight:        l.Weight,
		Images:        make([]ImageView, len(l.Images)),
		Specification: FlattenAttributes(linePairs(l.AttributeValues)),
	}
	for i, img := range l.Images {
		view.Images[i] = ImageView{
			AlternativeText: img.AlternativeText,
			URL:             p.urls.PublicURL(img.URL),
			Order:           img.Order,
		}
	}
	return view
}

func (p *Presenter) CategoryProducts(products []models.Product) []ProductCategoryView {
	out := make([]ProductCategoryView, len(products))
	for i := range products {
		out[i] = p.CategoryProduct(&products[i])
	}
	return out
}

func (p *Presenter) CategoryProduct(m *models.Product) ProductCategoryView {
	view := ProductCategoryView{
		Name:      m.Name,
		Slug:      m.Slug,
		PID:       m.PID,
		CreatedAt: m.CreatedAt,
	}

	line := firstLine(m.Lines)
	if line == nil {
		return view
	}
	price := line.Price.StringFixed(2)
	view.Price = &price

	for _, img := range line.Images {
		if img.Order == 1 {
			url := p.urls.PublicURL(img.URL)
			view.Image = &url
			break
		}
	}
	return view
}

// firstLine picks the active line with the lowest order.
func firstLine(lines []models.ProductLine) *models.ProductLine {
	var first *models.ProductLine
	for i := range lines {
		l := &lines[i]
		if !l.IsActive {
			continue
		}
		if first == nil || l.Order < first.Order {
			first = l
		}
	}
	return first
}
