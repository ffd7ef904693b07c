// internal/services/category_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/categorytree"
	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/models"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=235"`
	Slug     string     `json:"slug,omitempty" validate:"omitempty,max=255,slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=235"`
	Slug        *string    `json:"slug,omitempty" validate:"omitempty,max=255,slug"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
		IsActive: boolOr(req.IsActive, true),
	}
	if category.Slug == "" {
		category.Slug = slug.Make(req.Name)
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(category).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var category models.Category
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}

		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Slug != nil {
			category.Slug = *req.Slug
		}
		if req.ClearParent {
			category.ParentID = nil
		} else if req.ParentID != nil {
			category.ParentID = req.ParentID
		}
		if req.IsActive != nil {
			category.IsActive = *req.IsActive
		}

		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// Delete removes a leaf category. Products of the category are kept and
// lose their category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
	return translateError(err)
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("category")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) forest(ctx context.Context) (*categorytree.Forest, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categorytree.New(categories), nil
}

// ListAll returns every category in tree order.
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	f, err := s.forest(ctx)
	if err != nil {
		return nil, err
	}
	return f.Ordered(), nil
}

// ListActive returns the active categories in tree order. The tree is built
// over all categories so an inactive parent does not reshuffle its children.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	f, err := s.forest(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Category, 0, f.Len())
	f.Walk(func(n categorytree.Node) bool {
		if n.Category.IsActive {
			active = append(active, n.Category)
		}
		return true
	})
	return active, nil
}

func (s *CategoryService) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

func (s *CategoryService) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Scopes(models.ActiveOnly).Count(&count).Error
	return count, err
}

// Breadcrumb returns the path from the root to the category with the slug,
// the category itself included.
func (s *CategoryService) Breadcrumb(ctx context.Context, categorySlug string) ([]models.Category, error) {
	category, err := s.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	f, err := s.forest(ctx)
	if err != nil {
		return nil, err
	}
	return append(f.Ancestors(category.ID), *category), nil
}

func validateRequest(req interface{}) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		return &models.ValidationError{Field: details[0].Field, Message: details[0].Message}
	}
	return &models.ValidationError{Message: err.Error()}
}
