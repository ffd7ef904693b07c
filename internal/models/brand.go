// internal/models/brand.go
package models

import "gorm.io/gorm"

type Brand struct {
	BaseModel
	Name     string `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
	IsActive bool   `json:"is_active" gorm:"not null;index"`
}

func (b Brand) String() string {
	return b.Name
}

func (b *Brand) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(b); err != nil {
		return err
	}
	return checkUnique(tx, &Brand{}, "name", b.Name, b.ID)
}

func (b *Brand) BeforeDelete(tx *gorm.DB) error {
	var products int64
	if err := tx.Model(&Product{}).Where("brand_id = ?", b.ID).Count(&products).Error; err != nil {
		return err
	}
	if products > 0 {
		return IntegrityError("brand %q is used by %d products", b.Name, products)
	}
	return nil
}
