package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/service"
)

// NotificationCleanupJob purges read notifications past the retention
// window.
type NotificationCleanupJob struct {
	notifications *service.NotificationService
	retentionDays int
}

func NewNotificationCleanupJob(notifications *service.NotificationService, retentionDays int) *NotificationCleanupJob {
	return &NotificationCleanupJob{notifications: notifications, retentionDays: retentionDays}
}

func (j *NotificationCleanupJob) Name() string {
	return "notification_cleanup"
}

func (j *NotificationCleanupJob) Run(ctx context.Context) error {
	if j.notifications == nil {
		return nil
	}
	days := j.retentionDays
	if days <= 0 {
		days = 30
	}
	purged, err := j.notifications.PurgeRead(ctx, days)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("notifications purged", zap.Int64("count", purged))
	}
	return nil
}
