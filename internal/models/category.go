// internal/models/category.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a node of the category forest. Children point at their parent
// through ParentID; a category with children cannot be deleted.
type Category struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:235;not null;uniqueIndex" validate:"required,max=235"`
	Slug     string     `json:"slug" gorm:"size:255;not null;uniqueIndex" validate:"required,max=255,slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	IsActive bool       `json:"is_active" gorm:"not null;index"`

	// Relationships
	Parent *Category `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT" validate:"-"`
}

func (c Category) String() string {
	return c.Name
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if err := validateFields(c); err != nil {
		return err
	}

	if err := checkUnique(tx, &Category{}, "name", c.Name, c.ID); err != nil {
		return err
	}
	if err := checkUnique(tx, &Category{}, "slug", c.Slug, c.ID); err != nil {
		return err
	}

	if c.ParentID != nil {
		return c.checkParent(tx)
	}
	return nil
}

// BeforeDelete protects categories that are still referenced as a parent.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var children int64
	if err := tx.Model(&Category{}).Where("parent_id = ?", c.ID).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return IntegrityError("category %q has %d child categories", c.Name, children)
	}
	return nil
}

// checkParent requires the parent to exist and rejects moves that would make
// the category its own ancestor.
func (c *Category) checkParent(tx *gorm.DB) error {
	if *c.ParentID == c.ID {
		return NewValidationError("parent_id", "a category cannot be its own parent")
	}

	seen := map[uuid.UUID]bool{}
	next := c.ParentID
	for next != nil {
		if c.ID != uuid.Nil && *next == c.ID {
			return NewValidationError("parent_id", "a category cannot be moved below its own descendant")
		}
		if seen[*next] {
			break
		}
		seen[*next] = true

		var parent Category
		err := tx.Select("id", "parent_id").Where("id = ?", *next).Limit(1).Find(&parent).Error
		if err != nil {
			return err
		}
		if parent.ID == uuid.Nil {
			if next == c.ParentID {
				return NewValidationError("parent_id", "parent category does not exist")
			}
			break
		}
		next = parent.ParentID
	}
	return nil
}

func checkUnique(tx *gorm.DB, model interface{}, column string, value interface{}, self uuid.UUID) error {
	var count int64
	err := tx.Model(model).
		Where(column+" = ?", value).
		Where("id <> ?", self).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return IntegrityError("%s %v already exists", column, value)
	}
	return nil
}
