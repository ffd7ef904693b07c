// internal/services/product_line_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/models"
)

// ProductLineService manages product lines and their images. Both are
// numbered within their parent; creating one with a zero order asks for the
// next free number. Concurrent writers to the same parent may race for one
// number, in which case the slower one fails with a duplicate order error
// and should retry.
type ProductLineService struct {
	db    *gorm.DB
	files FileStore
}

type CreateProductLineRequest struct {
	ProductID     uuid.UUID       `json:"product_id" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku" validate:"required,max=100"`
	StockQty      int             `json:"stock_qty" validate:"gte=0"`
	Weight        float64         `json:"weight" validate:"gte=0"`
	Order         uint            `json:"order,omitempty"`
	ProductTypeID *uuid.UUID      `json:"product_type_id,omitempty"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// UpdateProductLineRequest changes a line. Unlike on create, an order of 0
// is rejected; renumbering an existing line needs an explicit value.
type UpdateProductLineRequest struct {
	Price    *decimal.Decimal `json:"price,omitempty"`
	SKU      *string          `json:"sku,omitempty" validate:"omitempty,max=100"`
	StockQty *int             `json:"stock_qty,omitempty" validate:"omitempty,gte=0"`
	Weight   *float64         `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Order    *uint            `json:"order,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type AddImageRequest struct {
	ProductLineID   uuid.UUID `json:"product_line_id" validate:"required"`
	URL             string    `json:"url" validate:"required,max=255"`
	AlternativeText string    `json:"alternative_text,omitempty" validate:"max=100"`
	Order           uint      `json:"order,omitempty"`
}

// NewProductLineService returns the line service. files may be nil, in which
// case image files of deleted lines stay in storage.
func NewProductLineService(db *gorm.DB, files FileStore) *ProductLineService {
	return &ProductLineService{db: db, files: files}
}

// Create adds a line to a product. The line inherits the product's type
// unless the request names one.
func (s *ProductLineService) Create(ctx context.Context, req *CreateProductLineRequest) (*models.ProductLine, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	line := &models.ProductLine{
		Price:     req.Price,
		SKU:       req.SKU,
		StockQty:  req.StockQty,
		Weight:    req.Weight,
		Order:     req.Order,
		ProductID: req.ProductID,
		IsActive:  boolOr(req.IsActive, true),
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id", "product_type_id").First(&product, "id = ?", req.ProductID).Error; err != nil {
			return err
		}

		line.ProductTypeID = product.ProductTypeID
		if req.ProductTypeID != nil {
			line.ProductTypeID = *req.ProductTypeID
		}
		return tx.Create(line).Error
	})
	if err != nil {
		return nil, translateError(orderConflict(s.db.WithContext(ctx), err, line.CheckOrder))
	}
	return line, nil
}

// Update applies the request and re-validates the whole line, including its
// order, before saving.
func (s *ProductLineService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductLineRequest) (*models.ProductLine, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Order != nil && *req.Order == 0 {
		return nil, models.NewValidationError("order", "Ensure this value is greater than or equal to 1.")
	}

	var line models.ProductLine
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&line, "id = ?", id).Error; err != nil {
			return err
		}

		if req.Price != nil {
			line.Price = *req.Price
		}
		if req.SKU != nil {
			line.SKU = *req.SKU
		}
		if req.StockQty != nil {
			line.StockQty = *req.StockQty
		}
		if req.Weight != nil {
			line.Weight = *req.Weight
		}
		if req.Order != nil {
			line.Order = *req.Order
		}
		if req.IsActive != nil {
			line.IsActive = *req.IsActive
		}

		return tx.Save(&line).Error
	})
	if err != nil {
		return nil, translateError(orderConflict(s.db.WithContext(ctx), err, line.CheckOrder))
	}
	return &line, nil
}

func (s *ProductLineService) Delete(ctx context.Context, id uuid.UUID) error {
	var images []string
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.ProductLine{}, "id = ?", id).Error; err != nil {
			return err
		}
		var err error
		images, err = deleteLines(tx, []uuid.UUID{id})
		return err
	})
	if err != nil {
		return translateError(err)
	}

	removeImages(ctx, s.db, s.files, images)
	return nil
}

func (s *ProductLineService) AddImage(ctx context.Context, req *AddImageRequest) (*models.ProductImage, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductLineID:   req.ProductLineID,
		URL:             req.URL,
		AlternativeText: req.AlternativeText,
		Order:           req.Order,
	}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.ProductLine{}, "id = ?", req.ProductLineID).Error; err != nil {
			return err
		}
		return tx.Create(image).Error
	})
	if err != nil {
		return nil, translateError(orderConflict(s.db.WithContext(ctx), err, image.CheckOrder))
	}
	return image, nil
}

// ListForProduct returns every line of the product, inactive ones included,
// by order.
func (s *ProductLineService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductLine, error) {
	var lines []models.ProductLine
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Scopes(models.ByOrder) }).
		Where("product_id = ?", productID).
		Scopes(models.ByOrder).
		Find(&lines).Error
	return lines, err
}

func (s *ProductLineService) CountAll(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ProductLine{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (s *ProductLineService) CountActive(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ProductLine{}).
		Scopes(models.ActiveOnly).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
