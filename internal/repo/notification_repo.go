package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

var notificationColumns = []string{
	"id", "user_id", "notification_type", "title", "message",
	"related_id", "is_read", "ctime",
}

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	data := map[string]interface{}{
		"id":                n.ID,
		"user_id":           n.UserID,
		"notification_type": n.NotificationType,
		"title":             n.Title,
		"message":           n.Message,
		"related_id":        n.RelatedID,
		"is_read":           n.IsRead,
		"ctime":             n.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("notifications", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset uint) ([]*model.Notification, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	if unreadOnly {
		where["is_read"] = 0
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("notifications", where, notificationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.NotificationType, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.Ctime); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	where := map[string]interface{}{"user_id": userID, "is_read": 0}
	sqlStr, args, err := builder.BuildSelect("notifications", where, []string{"count(1)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flips a single notification owned by the user.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	where := map[string]interface{}{"id": notificationID, "user_id": userID}
	sqlStr, args, err := builder.BuildUpdate("notifications", where, map[string]interface{}{"is_read": 1})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	where := map[string]interface{}{"user_id": userID, "is_read": 0}
	sqlStr, args, err := builder.BuildUpdate("notifications", where, map[string]interface{}{"is_read": 1})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteReadBefore removes read notifications created before the cutoff.
func (r *NotificationRepo) DeleteReadBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{"is_read": 1, "ctime <": cutoff}
	sqlStr, args, err := builder.BuildDelete("notifications", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
