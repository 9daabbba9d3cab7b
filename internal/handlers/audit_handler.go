package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profitflow/internal/services"
)

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs handles listing audit entries, newest first.
// @Summary     List audit log
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       action        query string false "Action, e.g. DISTRIBUTE_PROFITS"
// @Param       resource_type query string false "Resource type"
// @Param       resource_id   query string false "Resource ID"
// @Param       page          query int    false "Page number (default 1)"
// @Param       page_size     query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Audit entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.AuditFilter{
		Action:       strings.ToUpper(strings.TrimSpace(c.Query("action"))),
		ResourceType: strings.TrimSpace(c.Query("resource_type")),
		ResourceID:   strings.TrimSpace(c.Query("resource_id")),
	}
	result, err := h.auditService.List(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
