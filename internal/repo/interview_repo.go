package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

var interviewColumns = []string{
	"id", "application_id", "interviewer_id", "scheduled_at",
	"duration_minutes", "interview_type", "meeting_link",
	"notes", "feedback", "reminded", "ctime", "mtime",
}

type InterviewRepo struct {
	db *sql.DB
}

func NewInterviewRepo(db *sql.DB) *InterviewRepo {
	return &InterviewRepo{db: db}
}

func scanInterview(rows *sql.Rows) (*model.Interview, error) {
	var iv model.Interview
	if err := rows.Scan(
		&iv.ID, &iv.ApplicationID, &iv.InterviewerID, &iv.ScheduledAt,
		&iv.DurationMinutes, &iv.InterviewType, &iv.MeetingLink,
		&iv.Notes, &iv.Feedback, &iv.Reminded, &iv.Ctime, &iv.Mtime,
	); err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	data := map[string]interface{}{
		"id":               iv.ID,
		"application_id":   iv.ApplicationID,
		"interviewer_id":   iv.InterviewerID,
		"scheduled_at":     iv.ScheduledAt,
		"duration_minutes": iv.DurationMinutes,
		"interview_type":   iv.InterviewType,
		"meeting_link":     iv.MeetingLink,
		"notes":            iv.Notes,
		"feedback":         iv.Feedback,
		"reminded":         iv.Reminded,
		"ctime":            iv.Ctime,
		"mtime":            iv.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("interviews", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *InterviewRepo) GetByID(ctx context.Context, interviewID string) (*model.Interview, error) {
	where := map[string]interface{}{"id": interviewID}
	sqlStr, args, err := builder.BuildSelect("interviews", where, interviewColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanInterview(rows)
}

func (r *InterviewRepo) ListByApplication(ctx context.Context, appID string) ([]*model.Interview, error) {
	where := map[string]interface{}{
		"application_id": appID,
		"_orderby":       "scheduled_at asc",
	}
	return r.list(ctx, where)
}

func (r *InterviewRepo) ListByInterviewer(ctx context.Context, interviewerID string) ([]*model.Interview, error) {
	where := map[string]interface{}{
		"interviewer_id": interviewerID,
		"_orderby":       "scheduled_at asc",
	}
	return r.list(ctx, where)
}

// ListByCandidate walks through the candidate's applications; joins fall
// outside gendry's builder, so this one is raw SQL.
func (r *InterviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.Interview, error) {
	query := `SELECT i.id, i.application_id, i.interviewer_id, i.scheduled_at,
		i.duration_minutes, i.interview_type, i.meeting_link,
		i.notes, i.feedback, i.reminded, i.ctime, i.mtime
		FROM interviews i
		JOIN applications a ON i.application_id = a.id
		WHERE a.candidate_id = $1
		ORDER BY i.scheduled_at ASC`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ivs []*model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	return ivs, rows.Err()
}

// ListDueReminders returns unsent reminders for interviews scheduled inside
// [from, to).
func (r *InterviewRepo) ListDueReminders(ctx context.Context, from, to int64) ([]*model.Interview, error) {
	where := map[string]interface{}{
		"reminded":        0,
		"scheduled_at >=": from,
		"scheduled_at <":  to,
		"_orderby":        "scheduled_at asc",
	}
	return r.list(ctx, where)
}

func (r *InterviewRepo) list(ctx context.Context, where map[string]interface{}) ([]*model.Interview, error) {
	sqlStr, args, err := builder.BuildSelect("interviews", where, interviewColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []*model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, iv)
	}
	return items, rows.Err()
}

func (r *InterviewRepo) Update(ctx context.Context, interviewID string, update map[string]interface{}) error {
	if len(update) == 0 {
		return nil
	}
	where := map[string]interface{}{"id": interviewID}
	sqlStr, args, err := builder.BuildUpdate("interviews", where, update)
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

func (r *InterviewRepo) MarkReminded(ctx context.Context, interviewID string, mtime int64) error {
	return r.Update(ctx, interviewID, map[string]interface{}{
		"reminded": 1,
		"mtime":    mtime,
	})
}
