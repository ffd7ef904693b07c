// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "error.internal"
	KeyConflict      = "error.conflict"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Brands
	KeyBrandCreated  = "brand.created"
	KeyBrandDeleted  = "brand.deleted"
	KeyBrandNotFound = "brand.not_found"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Product lines and images
	KeyProductLineCreated  = "product_line.created"
	KeyProductLineUpdated  = "product_line.updated"
	KeyProductLineDeleted  = "product_line.deleted"
	KeyProductLineNotFound = "product_line.not_found"
	KeyImageUploaded       = "image.uploaded"

	// Attributes
	KeyAttributeCreated  = "attribute.created"
	KeyAttributeNotFound = "attribute.not_found"
	KeyAttributeAttached = "attribute.attached"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationID       = "validation.invalid_id"
)
