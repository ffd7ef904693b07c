// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/presenter"
	"github.com/javajoker/storefront-catalog/internal/services"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type ProductHandler struct {
	productService     *services.ProductService
	productLineService *services.ProductLineService
	storageService     *services.StorageService
	presenter          *presenter.Presenter
}

func NewProductHandler(productService *services.ProductService, productLineService *services.ProductLineService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService:     productService,
		productLineService: productLineService,
		storageService:     storageService,
		presenter:          presenter.New(storageService),
	}
}

// GET /api/product/
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.ListResponse(c, h.presenter.Products(products))
}

// GET /api/product/:slug/
//
// Unknown slugs yield an empty list rather than 404.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	products, err := h.productService.ListBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.ListResponse(c, h.presenter.Products(products))
}

// GET /api/product/category/:slug/
func (h *ProductHandler) ListProductsByCategory(c *gin.Context) {
	products, err := h.productService.ListByCategorySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.ListResponse(c, h.presenter.CategoryProducts(products))
}

// POST /api/manage/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyProductCreated, product)
}

// PATCH /api/manage/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /api/manage/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "product", err)
		return
	}
	utils.SuccessMessageResponse(c, i18n.KeyProductDeleted)
}

// GET /api/manage/products/:id/lines
func (h *ProductHandler) ListProductLines(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	lines, err := h.productLineService.ListForProduct(ctx, id)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	total, err := h.productLineService.CountAll(ctx, id)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	active, err := h.productLineService.CountActive(ctx, id)
	if err != nil {
		respondError(c, "product", err)
		return
	}

	utils.SuccessResponseWithMeta(c, lines, gin.H{
		"total":  total,
		"active": active,
	})
}

// POST /api/manage/product-lines
func (h *ProductHandler) CreateProductLine(c *gin.Context) {
	var req services.CreateProductLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.productLineService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "product", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyProductLineCreated, line)
}

// PATCH /api/manage/product-lines/:id
func (h *ProductHandler) UpdateProductLine(c *gin.Context) {
	id, ok := paramID(c, "id", "product line")
	if !ok {
		return
	}

	var req services.UpdateProductLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.productLineService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "product_line", err)
		return
	}
	utils.SuccessResponse(c, line)
}

// DELETE /api/manage/product-lines/:id
func (h *ProductHandler) DeleteProductLine(c *gin.Context) {
	id, ok := paramID(c, "id", "product line")
	if !ok {
		return
	}

	if err := h.productLineService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "product_line", err)
		return
	}
	utils.SuccessMessageResponse(c, i18n.KeyProductLineDeleted)
}

// POST /api/manage/product-lines/:id/images
//
// Accepts either a multipart "image" file, which is stored first, or a JSON
// body registering an existing URL.
func (h *ProductHandler) AddProductImage(c *gin.Context) {
	id, ok := paramID(c, "id", "product line")
	if !ok {
		return
	}

	req := services.AddImageRequest{ProductLineID: id}
	uploaded := c.ContentType() == "multipart/form-data"
	if uploaded {
		if !h.uploadImage(c, &req) {
			return
		}
	} else {
		var body imageBody
		if !bindJSON(c, &body) {
			return
		}
		req.URL = body.URL
		req.AlternativeText = body.AlternativeText
		req.Order = body.Order
	}

	image, err := h.productLineService.AddImage(c.Request.Context(), &req)
	if err != nil {
		if uploaded {
			h.discardUpload(c, req.URL)
		}
		respondError(c, "product_line", err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyImageUploaded, gin.H{
		"id":               image.ID,
		"product_line_id":  image.ProductLineID,
		"alternative_text": image.AlternativeText,
		"url":              h.storageService.PublicURL(image.URL),
		"order":            image.Order,
	})
}

type imageBody struct {
	URL             string `json:"url" validate:"required,max=255"`
	AlternativeText string `json:"alternative_text" validate:"max=100"`
	Order           uint   `json:"order"`
}

// uploadImage stores the multipart file and fills in req. The form fields
// are read first so that a bad form leaves nothing behind in storage.
func (h *ProductHandler) uploadImage(c *gin.Context, req *services.AddImageRequest) bool {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "image"), nil)
		return false
	}

	var form struct {
		AlternativeText string `form:"alternative_text"`
		Order           uint   `form:"order"`
	}
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order"), err.Error())
		return false
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, "product_line", err)
		return false
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(c.Request.Context(), file, header.Filename, h.storageService.ImageUploadOptions())
	if err != nil {
		respondError(c, "product_line", err)
		return false
	}

	req.URL = result.Key
	req.AlternativeText = form.AlternativeText
	req.Order = form.Order
	return true
}

// discardUpload removes a stored file whose image record was rejected.
func (h *ProductHandler) discardUpload(c *gin.Context, key string) {
	if err := h.storageService.DeleteFile(c.Request.Context(), key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Failed to remove rejected upload")
	}
}
