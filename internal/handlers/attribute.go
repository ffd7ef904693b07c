// internal/handlers/attribute.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/services"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type AttributeHandler struct {
	attributeService *services.AttributeService
}

func NewAttributeHandler(attributeService *services.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

// POST /api/manage/attributes
func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var req services.CreateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}

	attribute, err := h.attributeService.CreateAttribute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "attribute", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyAttributeCreated, attribute)
}

// POST /api/manage/attribute-values
func (h *AttributeHandler) CreateAttributeValue(c *gin.Context) {
	var req services.CreateAttributeValueRequest
	if !bindJSON(c, &req) {
		return
	}

	value, err := h.attributeService.CreateValue(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "attribute", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyAttributeCreated, value)
}

// POST /api/manage/product-types
func (h *AttributeHandler) CreateProductType(c *gin.Context) {
	var req services.CreateProductTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	productType, err := h.attributeService.CreateProductType(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "attribute", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeySuccess, productType)
}

// GET /api/manage/product-types/:id/attributes
func (h *AttributeHandler) GetApplicableAttributes(c *gin.Context) {
	id, ok := paramID(c, "id", "product type")
	if !ok {
		return
	}

	attributes, err := h.attributeService.ApplicableAttributes(c.Request.Context(), id)
	if err != nil {
		respondError(c, "attribute", err)
		return
	}
	utils.SuccessResponse(c, attributes)
}

// POST /api/manage/products/:id/attributes
func (h *AttributeHandler) AttachToProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	var req services.AttachValueRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.attributeService.AttachToProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyAttributeAttached, link)
}

// POST /api/manage/product-lines/:id/attributes
func (h *AttributeHandler) AttachToProductLine(c *gin.Context) {
	id, ok := paramID(c, "id", "product line")
	if !ok {
		return
	}

	var req services.AttachValueRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.attributeService.AttachToProductLine(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "product_line", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyAttributeAttached, link)
}
