// internal/models/product_type.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType declares which attributes apply to products of that type.
// A type inherits the attributes of its parent chain.
type ProductType struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Parent     *ProductType           `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT" validate:"-"`
	Attributes []ProductTypeAttribute `json:"attributes,omitempty" gorm:"foreignKey:ProductTypeID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (p ProductType) String() string {
	return p.Name
}

func (p *ProductType) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(p); err != nil {
		return err
	}
	if err := checkUnique(tx, &ProductType{}, "name", p.Name, p.ID); err != nil {
		return err
	}

	if p.ParentID != nil {
		if *p.ParentID == p.ID {
			return NewValidationError("parent_id", "a product type cannot be its own parent")
		}
		var count int64
		if err := tx.Model(&ProductType{}).Where("id = ?", *p.ParentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NewValidationError("parent_id", "parent product type does not exist")
		}
	}
	return nil
}

type ProductTypeAttribute struct {
	BaseModel
	ProductTypeID uuid.UUID `json:"product_type_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_type_attribute" validate:"required"`
	AttributeID   uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_type_attribute;index" validate:"required"`

	// Relationships
	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (a *ProductTypeAttribute) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(a); err != nil {
		return err
	}

	var count int64
	err := tx.Model(&ProductTypeAttribute{}).
		Where("product_type_id = ? AND attribute_id = ? AND id <> ?", a.ProductTypeID, a.AttributeID, a.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return IntegrityError("attribute is already declared on this product type")
	}
	return nil
}
