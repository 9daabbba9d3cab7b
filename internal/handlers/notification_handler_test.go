package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
)

const testNotificationID = "0190a5d2-7c1e-7b3a-9f00-0000000000e1"

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	r := gin.New()
	user := r.Group("/", injectUserID(testUserID))
	user.GET("/notifications", handler.GetNotifications)
	user.POST("/notifications/:id/read", handler.MarkRead)
	user.POST("/notifications/read-all", handler.MarkAllRead)
	return r
}

func TestNotificationHandler(t *testing.T) {
	t.Run("list passes the unread flag", func(t *testing.T) {
		var unread bool
		svc := &mockNotificationService{
			getUserNotificationsFn: func(_ string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
				unread = unreadOnly
				resp := pagination.NewPageResponse([]models.Notification{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupNotificationRouter(NewNotificationHandler(svc))

		rec := doRequest(r, "GET", "/notifications?unread=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !unread {
			t.Error("expected unread filter")
		}
	})

	t.Run("mark read returns 404 for a foreign notification", func(t *testing.T) {
		svc := &mockNotificationService{
			markReadFn: func(_, _ string) (*models.Notification, error) {
				return nil, apperrors.ErrNotificationNotFound
			},
		}
		r := setupNotificationRouter(NewNotificationHandler(svc))

		rec := doRequest(r, "POST", "/notifications/"+testNotificationID+"/read", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("mark all read reports the count", func(t *testing.T) {
		svc := &mockNotificationService{
			markAllReadFn: func(_ string) (int64, error) { return 3, nil },
		}
		r := setupNotificationRouter(NewNotificationHandler(svc))

		rec := doRequest(r, "POST", "/notifications/read-all", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["updated"] != float64(3) {
			t.Errorf("expected 3 updated, got %v", rec.Body.String())
		}
	})
}
