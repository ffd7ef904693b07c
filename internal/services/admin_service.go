// internal/services/admin_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/models"
)

// AdminService backs the management dashboard.
type AdminService struct {
	db         *gorm.DB
	categories *CategoryService
	products   *ProductService
}

type AdminDashboardStats struct {
	TotalCategories   int64     `json:"total_categories"`
	ActiveCategories  int64     `json:"active_categories"`
	TotalBrands       int64     `json:"total_brands"`
	TotalProducts     int64     `json:"total_products"`
	ActiveProducts    int64     `json:"active_products"`
	TotalProductLines int64     `json:"total_product_lines"`
	OutOfStockLines   int64     `json:"out_of_stock_lines"`
	NewProductsMonth  int64     `json:"new_products_this_month"`
	ChangesToday      int64     `json:"changes_today"`
	GeneratedAt       time.Time `json:"generated_at"`
}

type AuditLogFilter struct {
	ResourceType string `form:"resource_type"`
	Limit        int    `form:"limit"`
}

func NewAdminService(db *gorm.DB, categories *CategoryService, products *ProductService) *AdminService {
	return &AdminService{db: db, categories: categories, products: products}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{GeneratedAt: time.Now()}
	monthStart := time.Date(stats.GeneratedAt.Year(), stats.GeneratedAt.Month(), 1, 0, 0, 0, 0, stats.GeneratedAt.Location())
	dayStart := time.Date(stats.GeneratedAt.Year(), stats.GeneratedAt.Month(), stats.GeneratedAt.Day(), 0, 0, 0, 0, stats.GeneratedAt.Location())

	var err error
	if stats.TotalCategories, err = s.categories.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveCategories, err = s.categories.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.products.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProducts, err = s.products.CountActive(ctx); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.Brand{}), &stats.TotalBrands},
		{db.Model(&models.ProductLine{}), &stats.TotalProductLines},
		{db.Model(&models.ProductLine{}).Where("stock_qty <= 0"), &stats.OutOfStockLines},
		{db.Model(&models.Product{}).Where("created_at >= ?", monthStart), &stats.NewProductsMonth},
		{db.Model(&models.AuditLog{}).Where("created_at >= ?", dayStart), &stats.ChangesToday},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// GetAuditLogs returns the newest audit entries first.
func (s *AdminService) GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	query := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").Limit(filter.Limit).Find(&logs).Error
	return logs, err
}
