// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/presenter"
	"github.com/javajoker/storefront-catalog/internal/services"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/category/
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, "category", err)
		return
	}
	utils.ListResponse(c, presenter.Categories(categories))
}

// GET /api/category/:slug/breadcrumb/
func (h *CategoryHandler) GetBreadcrumb(c *gin.Context) {
	path, err := h.categoryService.Breadcrumb(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "category", err)
		return
	}
	utils.ListResponse(c, presenter.Categories(path))
}

// GET /api/manage/categories
//
// Lists every category, inactive ones included, in tree order.
func (h *CategoryHandler) ListAllCategories(c *gin.Context) {
	categories, err := h.categoryService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, "category", err)
		return
	}
	utils.SuccessResponse(c, categories)
}

// POST /api/manage/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "category", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyCategoryCreated, category)
}

// PATCH /api/manage/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id", "category")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "category", err)
		return
	}
	utils.SuccessResponse(c, category)
}

// DELETE /api/manage/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "category", err)
		return
	}
	utils.SuccessMessageResponse(c, i18n.KeyCategoryDeleted)
}
