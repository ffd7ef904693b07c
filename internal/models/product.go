// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name          string     `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Slug          string     `json:"slug" gorm:"size:255;not null;index" validate:"required,max=255,slug"`
	PID           string     `json:"pid" gorm:"column:pid;size:10;not null;uniqueIndex" validate:"required,max=10"`
	Description   string     `json:"description" gorm:"type:text"`
	IsDigital     bool       `json:"is_digital" gorm:"not null;default:false"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	BrandID       *uuid.UUID `json:"brand_id,omitempty" gorm:"type:uuid;index"`
	IsActive      bool       `json:"is_active" gorm:"not null;index"`
	ProductTypeID uuid.UUID  `json:"product_type_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Category        *Category               `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" validate:"-"`
	Brand           *Brand                  `json:"brand,omitempty" gorm:"foreignKey:BrandID;constraint:OnDelete:SET NULL" validate:"-"`
	ProductType     *ProductType            `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID;constraint:OnDelete:RESTRICT" validate:"-"`
	Lines           []ProductLine           `json:"product_line,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" validate:"-"`
	AttributeValues []ProductAttributeValue `json:"attribute_values,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (p Product) String() string {
	return p.Name
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(p); err != nil {
		return err
	}
	if err := checkUnique(tx, &Product{}, "pid", p.PID, p.ID); err != nil {
		return err
	}

	if p.CategoryID != nil {
		if err := checkExists(tx, &Category{}, *p.CategoryID, "category_id"); err != nil {
			return err
		}
	}
	if p.BrandID != nil {
		if err := checkExists(tx, &Brand{}, *p.BrandID, "brand_id"); err != nil {
			return err
		}
	}
	return checkExists(tx, &ProductType{}, p.ProductTypeID, "product_type_id")
}

func checkExists(tx *gorm.DB, model interface{}, id uuid.UUID, field string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NewValidationError(field, "referenced record does not exist")
	}
	return nil
}
