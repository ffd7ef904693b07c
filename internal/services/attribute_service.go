// internal/services/attribute_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/models"
)

// AttributeService manages attributes, their values, product types and the
// links that attach values to products and product lines.
type AttributeService struct {
	db *gorm.DB
}

type CreateAttributeRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

type CreateAttributeValueRequest struct {
	AttributeID uuid.UUID `json:"attribute_id" validate:"required"`
	Value       string    `json:"attribute_value" validate:"required,max=100"`
}

type CreateProductTypeRequest struct {
	Name         string      `json:"name" validate:"required,max=100"`
	ParentID     *uuid.UUID  `json:"parent_id,omitempty"`
	AttributeIDs []uuid.UUID `json:"attribute_ids,omitempty"`
}

type AttachValueRequest struct {
	AttributeValueID uuid.UUID `json:"attribute_value_id" validate:"required"`
}

func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

func (s *AttributeService) CreateAttribute(ctx context.Context, req *CreateAttributeRequest) (*models.Attribute, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	attribute := &models.Attribute{Name: req.Name, Description: req.Description}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(attribute).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return attribute, nil
}

func (s *AttributeService) CreateValue(ctx context.Context, req *CreateAttributeValueRequest) (*models.AttributeValue, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	value := &models.AttributeValue{AttributeID: req.AttributeID, Value: req.Value}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(value).Error; err != nil {
			return err
		}
		return tx.Preload("Attribute").First(value, "id = ?", value.ID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return value, nil
}

func (s *AttributeService) CreateProductType(ctx context.Context, req *CreateProductTypeRequest) (*models.ProductType, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	productType := &models.ProductType{Name: req.Name, ParentID: req.ParentID}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(productType).Error; err != nil {
			return err
		}
		for _, attributeID := range req.AttributeIDs {
			if err := attachTypeAttribute(tx, productType.ID, attributeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return productType, nil
}

func (s *AttributeService) AttachTypeAttribute(ctx context.Context, productTypeID, attributeID uuid.UUID) error {
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return attachTypeAttribute(tx, productTypeID, attributeID)
	})
	return translateError(err)
}

func attachTypeAttribute(tx *gorm.DB, productTypeID, attributeID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Attribute{}).Where("id = ?", attributeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.NewValidationError("attribute_id", "attribute does not exist")
	}
	return tx.Create(&models.ProductTypeAttribute{ProductTypeID: productTypeID, AttributeID: attributeID}).Error
}

// ApplicableAttributes returns the attributes declared on the product type
// and on each of its ancestors, nearest type first.
func (s *AttributeService) ApplicableAttributes(ctx context.Context, productTypeID uuid.UUID) ([]models.Attribute, error) {
	db := s.db.WithContext(ctx)

	var attributes []models.Attribute
	seenTypes := map[uuid.UUID]bool{}
	seenAttributes := map[uuid.UUID]bool{}

	next := &productTypeID
	for next != nil && !seenTypes[*next] {
		seenTypes[*next] = true

		var productType models.ProductType
		err := db.Preload("Attributes.Attribute").First(&productType, "id = ?", *next).Error
		if err != nil {
			return nil, translateError(err)
		}

		for _, declared := range productType.Attributes {
			if declared.Attribute == nil || seenAttributes[declared.AttributeID] {
				continue
			}
			seenAttributes[declared.AttributeID] = true
			attributes = append(attributes, *declared.Attribute)
		}
		next = productType.ParentID
	}
	return attributes, nil
}

// AttachToProduct links an attribute value to a product. A product carries
// at most one value per attribute.
func (s *AttributeService) AttachToProduct(ctx context.Context, productID uuid.UUID, req *AttachValueRequest) (*models.ProductAttributeValue, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	link := &models.ProductAttributeValue{ProductID: productID, AttributeValueID: req.AttributeValueID}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Product{}, "id = ?", productID).Error; err != nil {
			return err
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return link, nil
}

// AttachToProductLine links an attribute value to a product line. A line
// carries at most one value per attribute.
func (s *AttributeService) AttachToProductLine(ctx context.Context, lineID uuid.UUID, req *AttachValueRequest) (*models.ProductLineAttributeValue, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	link := &models.ProductLineAttributeValue{ProductLineID: lineID, AttributeValueID: req.AttributeValueID}
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.ProductLine{}, "id = ?", lineID).Error; err != nil {
			return err
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return link, nil
}
