package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

type NotificationService struct {
	notifications *repo.NotificationRepo
}

func NewNotificationService(notifications *repo.NotificationRepo) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Notify records an in-app notification. Failures are logged, not
// propagated; a lost notification never fails the triggering operation.
func (s *NotificationService) Notify(ctx context.Context, userID, notificationType, title, message, relatedID string) {
	n := &model.Notification{
		ID:               newID(),
		UserID:           userID,
		NotificationType: notificationType,
		Title:            title,
		Message:          message,
		RelatedID:        relatedID,
		Ctime:            timeutil.NowUnix(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		logutil.GetLogger(ctx).Error("create notification failed",
			zap.String("user_id", userID),
			zap.String("type", notificationType),
			zap.Error(err))
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset uint) ([]*model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// PurgeRead drops read notifications older than the given number of days.
func (s *NotificationService) PurgeRead(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := timeutil.DaysAgoUnix(olderThanDays)
	return s.notifications.DeleteReadBefore(ctx, cutoff)
}
