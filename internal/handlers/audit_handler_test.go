package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/services"
)

func setupAuditRouter(mock *mockAuditService) *gin.Engine {
	r := gin.New()
	h := NewAuditHandler(mock)
	r.GET("/admin/audit-logs", injectAdmin(), h.ListAuditLogs)
	return r
}

func TestListAuditLogs(t *testing.T) {
	t.Run("filters are normalised", func(t *testing.T) {
		var got services.AuditFilter
		var gotPage pagination.PageRequest
		mock := &mockAuditService{
			listFn: func(filter services.AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
				got, gotPage = filter, page
				return &pagination.PageResponse[models.AuditLog]{
					Data:       []models.AuditLog{{Action: "DISTRIBUTE_PROFITS", Source: models.AuditSourcePipeline}},
					Page:       page.Page,
					PageSize:   page.PageSize,
					TotalItems: 1,
					TotalPages: 1,
				}, nil
			},
		}
		rec := doRequest(setupAuditRouter(mock), "GET",
			"/admin/audit-logs?action=distribute_profits&resource_type=profit_log&resource_id=2024-01-07&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Action != "DISTRIBUTE_PROFITS" || got.ResourceType != "profit_log" || got.ResourceID != "2024-01-07" {
			t.Errorf("unexpected filter %+v", got)
		}
		if gotPage.Page != 1 || gotPage.PageSize != 5 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 || data[0].(map[string]interface{})["source"] != "pipeline" {
			t.Errorf("unexpected data %v", data)
		}
	})

	t.Run("invalid page", func(t *testing.T) {
		rec := doRequest(setupAuditRouter(&mockAuditService{}), "GET", "/admin/audit-logs?page_size=500", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("service error", func(t *testing.T) {
		mock := &mockAuditService{
			listFn: func(services.AuditFilter, pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))
			},
		}
		rec := doRequest(setupAuditRouter(mock), "GET", "/admin/audit-logs", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
