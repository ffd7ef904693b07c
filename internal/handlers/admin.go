// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/services"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /api/manage/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, "admin", err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /api/manage/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	var filter services.AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "query"), err.Error())
		return
	}

	logs, err := h.adminService.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "admin", err)
		return
	}
	utils.SuccessResponse(c, logs)
}
