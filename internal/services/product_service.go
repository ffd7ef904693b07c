// internal/services/product_service.go
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/models"
)

type ProductService struct {
	db    *gorm.DB
	files FileStore
}

type CreateProductRequest struct {
	Name          string     `json:"name" validate:"required,max=100"`
	Slug          string     `json:"slug,omitempty" validate:"omitempty,max=255,slug"`
	PID           string     `json:"pid,omitempty" validate:"omitempty,max=10"`
	Description   string     `json:"description,omitempty"`
	IsDigital     bool       `json:"is_digital"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	BrandID       *uuid.UUID `json:"brand_id,omitempty"`
	ProductTypeID uuid.UUID  `json:"product_type_id" validate:"required"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Slug          *string    `json:"slug,omitempty" validate:"omitempty,max=255,slug"`
	Description   *string    `json:"description,omitempty"`
	IsDigital     *bool      `json:"is_digital,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ClearCategory bool       `json:"clear_category,omitempty"`
	BrandID       *uuid.UUID `json:"brand_id,omitempty"`
	ClearBrand    bool       `json:"clear_brand,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

// NewProductService returns the product service. files may be nil, in which
// case image files of deleted products stay in storage.
func NewProductService(db *gorm.DB, files FileStore) *ProductService {
	return &ProductService{db: db, files: files}
}

// preloadCatalog loads everything the read representations need with one
// query per relationship. Only active lines are loaded.
func preloadCatalog(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Brand").
		Preload("AttributeValues.AttributeValue.Attribute").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(models.ActiveOnly, models.ByOrder)
		}).
		Preload("Lines.Images", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(models.ByOrder)
		}).
		Preload("Lines.AttributeValues.AttributeValue.Attribute")
}

func newPID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		PID:           req.PID,
		Description:   req.Description,
		IsDigital:     req.IsDigital,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		ProductTypeID: req.ProductTypeID,
		IsActive:      boolOr(req.IsActive, true),
	}
	if product.Slug == "" {
		product.Slug = slug.Make(req.Name)
	}
	if product.PID == "" {
		product.PID = newPID()
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var product models.Product
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Slug != nil {
			product.Slug = *req.Slug
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.IsDigital != nil {
			product.IsDigital = *req.IsDigital
		}
		if req.ClearCategory {
			product.CategoryID = nil
		} else if req.CategoryID != nil {
			product.CategoryID = req.CategoryID
		}
		if req.ClearBrand {
			product.BrandID = nil
		} else if req.BrandID != nil {
			product.BrandID = req.BrandID
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}

		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// Delete removes the product with its lines, images and attribute links.
// Stored image files are removed once the records are gone.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	var images []string
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		var lineIDs []uuid.UUID
		if err := tx.Model(&models.ProductLine{}).Where("product_id = ?", id).Pluck("id", &lineIDs).Error; err != nil {
			return err
		}
		var err error
		if images, err = deleteLines(tx, lineIDs); err != nil {
			return err
		}
		if err = tx.Where("product_id = ?", id).Delete(&models.ProductAttributeValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return translateError(err)
	}

	removeImages(ctx, s.db, s.files, images)
	return nil
}

// deleteLines removes the lines with their images and attribute links. It
// returns the locations of the deleted images.
func deleteLines(tx *gorm.DB, ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var images []string
	if err := tx.Model(&models.ProductImage{}).Where("product_line_id IN (?)", ids).Pluck("url", &images).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("product_line_id IN (?)", ids).Delete(&models.ProductImage{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("product_line_id IN (?)", ids).Delete(&models.ProductLineAttributeValue{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN (?)", ids).Delete(&models.ProductLine{}).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ProductService) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := preloadCatalog(s.db.WithContext(ctx)).
		Scopes(models.ActiveOnly).
		Order("name").
		Find(&products).Error
	return products, err
}

// ListBySlug returns the active products with the slug. Slugs are not
// unique, so the result may hold more than one product.
func (s *ProductService) ListBySlug(ctx context.Context, productSlug string) ([]models.Product, error) {
	var products []models.Product
	err := preloadCatalog(s.db.WithContext(ctx)).
		Scopes(models.ActiveOnly).
		Where("slug = ?", productSlug).
		Order("created_at").
		Find(&products).Error
	return products, err
}

// ListByCategorySlug returns the active products filed directly under the
// category with the slug.
func (s *ProductService) ListByCategorySlug(ctx context.Context, categorySlug string) ([]models.Product, error) {
	db := s.db.WithContext(ctx)
	category := db.Model(&models.Category{}).Select("id").Where("slug = ?", categorySlug)

	var products []models.Product
	err := preloadCatalog(db).
		Scopes(models.ActiveOnly).
		Where("category_id IN (?)", category).
		Order("name").
		Find(&products).Error
	return products, err
}

func (s *ProductService) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (s *ProductService) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Scopes(models.ActiveOnly).Count(&count).Error
	return count, err
}
