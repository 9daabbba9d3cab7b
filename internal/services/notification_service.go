package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/realtime"
)

// notificationService stores in-app notifications and pushes them to the
// user's live channel.
type notificationService struct {
	db     *gorm.DB
	broker realtime.Broker
}

// NewNotificationService creates a new NotificationServicer. broker may be nil.
func NewNotificationService(db *gorm.DB, broker realtime.Broker) NotificationServicer {
	return &notificationService{db: db, broker: broker}
}

// Notify stores a notification and publishes it live. Failures are logged only.
func (s *notificationService) Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string, data map[string]interface{}) {
	log := logger.Get()

	payload, err := toJSON(data)
	if err != nil {
		log.Errorw("failed to marshal notification data", "error", err, "user_id", userID)
		payload = nil
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		log.Errorw("failed to create notification", "error", err, "user_id", userID, "type", kind)
		return
	}

	if s.broker == nil {
		return
	}
	event, err := realtime.NewEvent(realtime.EventNotification, userID, n)
	if err != nil {
		log.Errorw("failed to build live event", "error", err, "user_id", userID)
		return
	}
	if err := s.broker.Publish(ctx, event); err != nil {
		log.Warnw("failed to publish live event", "error", err, "user_id", userID)
	}
}

// GetUserNotifications lists the user's notifications, newest first.
func (s *notificationService) GetUserNotifications(userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	resp, err := pagination.Fetch[models.Notification](query, page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *notificationService) MarkRead(userID, notificationID string) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if n.ReadAt != nil {
		return &n, nil
	}

	now := time.Now().UTC()
	if err := s.db.Model(&n).Update("read_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	n.ReadAt = &now
	return &n, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *notificationService) MarkAllRead(userID string) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now().UTC())
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}
