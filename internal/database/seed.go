// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/models"
)

// SeedDemoCatalog fills an empty database with a small browsable catalog.
// It does nothing when any category already exists.
func SeedDemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		logrus.Info("Catalog already populated, skipping demo seed")
		return nil
	}

	logrus.Info("Seeding demo catalog...")

	return WithTransaction(db, func(tx *gorm.DB) error {
		clothing := &models.Category{Name: "Clothing", Slug: "clothing", IsActive: true}
		if err := tx.Create(clothing).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		shoes := &models.Category{Name: "Shoes", Slug: "shoes", ParentID: &clothing.ID, IsActive: true}
		if err := tx.Create(shoes).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		brand := &models.Brand{Name: "Northwind", IsActive: true}
		if err := tx.Create(brand).Error; err != nil {
			return fmt.Errorf("failed to create brand: %w", err)
		}

		color := &models.Attribute{Name: "color", Description: "Main colour"}
		size := &models.Attribute{Name: "size", Description: "EU size"}
		for _, a := range []*models.Attribute{color, size} {
			if err := tx.Create(a).Error; err != nil {
				return fmt.Errorf("failed to create attribute: %w", err)
			}
		}

		footwear := &models.ProductType{Name: "footwear"}
		if err := tx.Create(footwear).Error; err != nil {
			return fmt.Errorf("failed to create product type: %w", err)
		}
		for _, a := range []*models.Attribute{color, size} {
			link := &models.ProductTypeAttribute{ProductTypeID: footwear.ID, AttributeID: a.ID}
			if err := tx.Create(link).Error; err != nil {
				return fmt.Errorf("failed to declare attribute: %w", err)
			}
		}

		product := &models.Product{
			Name:          "Trail Runner",
			Slug:          "trail-runner",
			PID:           "TR0001",
			Description:   "Lightweight running shoe",
			CategoryID:    &shoes.ID,
			BrandID:       &brand.ID,
			ProductTypeID: footwear.ID,
			IsActive:      true,
		}
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		variants := []struct {
			sku, color, size, price string
		}{
			{"TR0001-RED-42", "red", "42", "89.90"},
			{"TR0001-BLU-43", "blue", "43", "94.50"},
		}
		for _, v := range variants {
			line := &models.ProductLine{
				Price:         decimal.RequireFromString(v.price),
				SKU:           v.sku,
				StockQty:      10,
				ProductID:     product.ID,
				ProductTypeID: footwear.ID,
				IsActive:      true,
				Weight:        0.6,
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create product line: %w", err)
			}

			image := &models.ProductImage{
				AlternativeText: v.sku,
				URL:             "images/" + v.sku + ".jpg",
				ProductLineID:   line.ID,
			}
			if err := tx.Create(image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}

			for attr, value := range map[*models.Attribute]string{color: v.color, size: v.size} {
				av := &models.AttributeValue{AttributeID: attr.ID, Value: value}
				if err := tx.Create(av).Error; err != nil {
					return fmt.Errorf("failed to create attribute value: %w", err)
				}
				link := &models.ProductLineAttributeValue{ProductLineID: line.ID, AttributeValueID: av.ID}
				if err := tx.Create(link).Error; err != nil {
					return fmt.Errorf("failed to attach attribute value: %w", err)
				}
			}
		}

		logrus.Info("Demo catalog seeded")
		return nil
	})
}
