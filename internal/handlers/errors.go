// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/models"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

// respondError writes the envelope matching err's kind. resource names the
// translation prefix used for not-found messages.
func respondError(c *gin.Context, resource string, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}})
	case errors.Is(err, models.ErrValidation):
		utils.ValidationErrorResponse(c, []utils.ValidationError{{Message: err.Error()}})
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, models.ErrIntegrity):
		utils.ConflictResponse(c, err.Error())
	default:
		c.Error(err)
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates the request body. It writes the error
// response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func paramID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationID, resource), nil)
		return uuid.Nil, false
	}
	return id, true
}
