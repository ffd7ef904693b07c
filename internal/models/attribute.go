// internal/models/attribute.go
package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attribute is a named axis of variation such as "color".
type Attribute struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
	Description string `json:"description" gorm:"type:text"`
}

func (a Attribute) String() string {
	return a.Name
}

func (a *Attribute) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(a); err != nil {
		return err
	}
	return checkUnique(tx, &Attribute{}, "name", a.Name, a.ID)
}

// AttributeValue is one concrete value on an attribute, e.g. color "red".
type AttributeValue struct {
	BaseModel
	AttributeID uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;uniqueIndex:idx_attribute_value_pair" validate:"required"`
	Value       string    `json:"attribute_value" gorm:"column:attribute_value;size:100;not null;uniqueIndex:idx_attribute_value_pair" validate:"required,max=100"`

	// Relationships
	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (v AttributeValue) String() string {
	name := ""
	if v.Attribute != nil {
		name = v.Attribute.Name
	}
	return fmt.Sprintf("%s-%s", name, v.Value)
}

func (v *AttributeValue) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(v); err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&Attribute{}).Where("id = ?", v.AttributeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NewValidationError("attribute_id", "attribute does not exist")
	}

	err := tx.Model(&AttributeValue{}).
		Where("attribute_id = ? AND attribute_value = ? AND id <> ?", v.AttributeID, v.Value, v.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return IntegrityError("attribute value %q already exists", v.Value)
	}
	return nil
}

// ProductAttributeValue links a product to one attribute value.
type ProductAttributeValue struct {
	BaseModel
	ProductID        uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute_value" validate:"required"`
	AttributeValueID uuid.UUID `json:"attribute_value_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute_value;index" validate:"required"`

	// Relationships
	AttributeValue *AttributeValue `json:"attribute_value,omitempty" gorm:"foreignKey:AttributeValueID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (a *ProductAttributeValue) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(a); err != nil {
		return err
	}
	return checkOneValuePerAttribute(tx, "product_attribute_values", "product_id", a.ProductID, a.AttributeValueID, a.ID)
}

// ProductLineAttributeValue links a product line to one attribute value.
type ProductLineAttributeValue struct {
	BaseModel
	ProductLineID    uuid.UUID `json:"product_line_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_line_attribute_value" validate:"required"`
	AttributeValueID uuid.UUID `json:"attribute_value_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_line_attribute_value;index" validate:"required"`

	// Relationships
	AttributeValue *AttributeValue `json:"attribute_value,omitempty" gorm:"foreignKey:AttributeValueID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (a *ProductLineAttributeValue) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(a); err != nil {
		return err
	}
	return checkOneValuePerAttribute(tx, "product_line_attribute_values", "product_line_id", a.ProductLineID, a.AttributeValueID, a.ID)
}

// checkOneValuePerAttribute rejects a link when the owner already carries a
// value of the same underlying attribute.
func checkOneValuePerAttribute(tx *gorm.DB, table, ownerColumn string, ownerID, valueID, self uuid.UUID) error {
	var value AttributeValue
	if err := tx.Select("id", "attribute_id").Where("id = ?", valueID).Limit(1).Find(&value).Error; err != nil {
		return err
	}
	if value.ID == uuid.Nil {
		return NewValidationError("attribute_value_id", "attribute value does not exist")
	}

	var count int64
	err := tx.Table(table+" AS link").
		Joins("JOIN attribute_values ON attribute_values.id = link.attribute_value_id").
		Where("link."+ownerColumn+" = ?", ownerID).
		Where("link.id <> ?", self).
		Where("attribute_values.attribute_id = ?", value.AttributeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError("attribute_value_id", "Duplicate attribute exists.")
	}
	return nil
}
