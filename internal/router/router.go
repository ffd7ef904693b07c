// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/config"
	"github.com/javajoker/storefront-catalog/internal/handlers"
	"github.com/javajoker/storefront-catalog/internal/middleware"
	"github.com/javajoker/storefront-catalog/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	categoryService := services.NewCategoryService(db)
	brandService := services.NewBrandService(db)
	attributeService := services.NewAttributeService(db)
	productService := services.NewProductService(db, storageService)
	productLineService := services.NewProductLineService(db, storageService)
	adminService := services.NewAdminService(db, categoryService, productService)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	brandHandler := handlers.NewBrandHandler(brandService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	productHandler := handlers.NewProductHandler(productService, productLineService, storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		categories := api.Group("/category")
		{
			categories.GET("/", categoryHandler.ListCategories)
			categories.GET("/:slug/breadcrumb/", categoryHandler.GetBreadcrumb)
		}

		api.GET("/brand/", brandHandler.ListBrands)

		products := api.Group("/product")
		{
			products.GET("/", productHandler.ListProducts)
			products.GET("/category/:slug/", productHandler.ListProductsByCategory)
			products.GET("/:slug/", productHandler.GetProduct)
		}

		if cfg.Manage.Enabled {
			manage := api.Group("/manage")
			manage.Use(middleware.AuditLogMiddleware(db))
			{
				manage.GET("/stats", adminHandler.GetDashboardStats)
				manage.GET("/audit-logs", adminHandler.GetAuditLogs)

				manage.GET("/categories", categoryHandler.ListAllCategories)
				manage.POST("/categories", categoryHandler.CreateCategory)
				manage.PATCH("/categories/:id", categoryHandler.UpdateCategory)
				manage.DELETE("/categories/:id", categoryHandler.DeleteCategory)

				manage.POST("/brands", brandHandler.CreateBrand)
				manage.DELETE("/brands/:id", brandHandler.DeleteBrand)

				manage.POST("/attributes", attributeHandler.CreateAttribute)
				manage.POST("/attribute-values", attributeHandler.CreateAttributeValue)
				manage.POST("/product-types", attributeHandler.CreateProductType)
				manage.GET("/product-types/:id/attributes", attributeHandler.GetApplicableAttributes)

				manage.POST("/products", productHandler.CreateProduct)
				manage.PATCH("/products/:id", productHandler.UpdateProduct)
				manage.DELETE("/products/:id", productHandler.DeleteProduct)
				manage.GET("/products/:id/lines", productHandler.ListProductLines)
				manage.POST("/products/:id/attributes", attributeHandler.AttachToProduct)

				manage.POST("/product-lines", productHandler.CreateProductLine)
				manage.PATCH("/product-lines/:id", productHandler.UpdateProductLine)
				manage.DELETE("/product-lines/:id", productHandler.DeleteProductLine)
				manage.POST("/product-lines/:id/images", productHandler.AddProductImage)
				manage.POST("/product-lines/:id/attributes", attributeHandler.AttachToProductLine)
			}
		}
	}

	// Local media, when images are not kept in S3
	if cfg.AWS.AccessKeyID == "" && cfg.Media.URLPrefix != "" {
		r.Static(cfg.Media.URLPrefix, cfg.Media.Root)
	}

	return r, nil
}
