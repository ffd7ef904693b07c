// internal/services/brand_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/models"
)

type BrandService struct {
	db *gorm.DB
}

type CreateBrandRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

func (s *BrandService) Create(ctx context.Context, req *CreateBrandRequest) (*models.Brand, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	brand := &models.Brand{Name: req.Name, IsActive: boolOr(req.IsActive, true)}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(brand).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return brand, nil
}

func (s *BrandService) ListActive(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.WithContext(ctx).Scopes(models.ActiveOnly).Order("name").Find(&brands).Error
	return brands, err
}

// Delete fails while any product references the brand.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var brand models.Brand
		if err := tx.First(&brand, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&brand).Error
	})
	return translateError(err)
}
