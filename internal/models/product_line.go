// internal/models/product_line.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/ordering"
)

var (
	lineOrdering  = ordering.MustNew(&ProductLine{}, "Order", "ProductID")
	imageOrdering = ordering.MustNew(&ProductImage{}, "Order", "ProductLineID")

	// maxPrice is the first value that no longer fits in decimal(6,2).
	maxPrice = decimal.New(10000, 0)
)

// ProductLine is a purchasable variant of a product. Lines are numbered
// 1, 2, ... within their product.
type ProductLine struct {
	BaseModel
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
	SKU           string          `json:"sku" gorm:"column:sku;size:100;not null" validate:"required,max=100"`
	StockQty      int             `json:"stock_qty" gorm:"not null;default:0"`
	ProductID     uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_line_order,priority:1" validate:"required"`
	IsActive      bool            `json:"is_active" gorm:"not null;index"`
	Order         uint            `json:"order" gorm:"column:order;not null;uniqueIndex:idx_product_line_order,priority:2"`
	Weight        float64         `json:"weight" gorm:"not null;default:0"`
	ProductTypeID uuid.UUID       `json:"product_type_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	ProductType     *ProductType                `json:"-" gorm:"foreignKey:ProductTypeID;constraint:OnDelete:RESTRICT" validate:"-"`
	Images          []ProductImage              `json:"product_image,omitempty" gorm:"foreignKey:ProductLineID;constraint:OnDelete:CASCADE" validate:"-"`
	AttributeValues []ProductLineAttributeValue `json:"attribute_values,omitempty" gorm:"foreignKey:ProductLineID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (l *ProductLine) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(l); err != nil {
		return err
	}
	if err := validatePrice(l.Price); err != nil {
		return err
	}
	if err := checkExists(tx, &ProductType{}, l.ProductTypeID, "product_type_id"); err != nil {
		return err
	}
	return orderingError(lineOrdering.Prepare(tx, l), "product_id")
}

// CheckOrder reports whether another line of the same product holds l's
// order.
func (l *ProductLine) CheckOrder(tx *gorm.DB) error {
	return orderingError(lineOrdering.Validate(tx, l), "product_id")
}

// validatePrice enforces decimal(6,2): at most two fractional digits and four
// integer digits.
func validatePrice(price decimal.Decimal) error {
	if !price.Equal(price.Round(2)) {
		return NewValidationError("price", "Ensure that there are no more than 2 decimal places.")
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return NewValidationError("price", "Ensure that there are no more than 6 digits in total.")
	}
	return nil
}

type ProductImage struct {
	BaseModel
	AlternativeText string    `json:"alternative_text" gorm:"size:100" validate:"max=100"`
	URL             string    `json:"url" gorm:"column:url;size:255;not null" validate:"required,max=255"`
	ProductLineID   uuid.UUID `json:"product_line_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_image_order,priority:1" validate:"required"`
	Order           uint      `json:"order" gorm:"column:order;not null;uniqueIndex:idx_product_image_order,priority:2"`
}

func (i *ProductImage) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(i); err != nil {
		return err
	}
	return orderingError(imageOrdering.Prepare(tx, i), "product_line_id")
}

func (i *ProductImage) CheckOrder(tx *gorm.DB) error {
	return orderingError(imageOrdering.Validate(tx, i), "product_line_id")
}
