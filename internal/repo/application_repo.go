package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

var applicationColumns = []string{
	"id", "job_id", "candidate_id", "cover_letter", "resume_key",
	"status", "notes", "ctime", "mtime",
}

type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func scanApplication(rows *sql.Rows) (*model.Application, error) {
	var app model.Application
	if err := rows.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter,
		&app.ResumeKey, &app.Status, &app.Notes, &app.Ctime, &app.Mtime,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	data := map[string]interface{}{
		"id":           app.ID,
		"job_id":       app.JobID,
		"candidate_id": app.CandidateID,
		"cover_letter": app.CoverLetter,
		"resume_key":   app.ResumeKey,
		"status":       app.Status,
		"notes":        app.Notes,
		"ctime":        app.Ctime,
		"mtime":        app.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("applications", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, appID string) (*model.Application, error) {
	where := map[string]interface{}{"id": appID}
	sqlStr, args, err := builder.BuildSelect("applications", where, applicationColumns)
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
	return scanApplication(rows)
}

func (r *ApplicationRepo) list(ctx context.Context, where map[string]interface{}) ([]*model.Application, error) {
	sqlStr, args, err := builder.BuildSelect("applications", where, applicationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.Application, error) {
	return r.list(ctx, map[string]interface{}{
		"candidate_id": candidateID,
		"_orderby":     "ctime desc",
	})
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	return r.list(ctx, map[string]interface{}{
		"job_id":   jobID,
		"_orderby": "ctime desc",
	})
}

// ListByRecruiter returns every application targeting one of the
// recruiter's postings. Joins are outside gendry's builder, so this one is
// raw SQL.
func (r *ApplicationRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]*model.Application, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_key,
		a.status, a.notes, a.ctime, a.mtime
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE j.recruiter_id = $1
		ORDER BY a.ctime DESC`
	rows, err := r.db.QueryContext(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*model.Application, error) {
	apps, err := r.list(ctx, map[string]interface{}{
		"job_id":       jobID,
		"candidate_id": candidateID,
	})
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, appErr.ErrNotFound
	}
	return apps[0], nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, appID, status string, mtime int64) error {
	return r.update(ctx, appID, map[string]interface{}{
		"status": status,
		"mtime":  mtime,
	})
}

func (r *ApplicationRepo) UpdateNotes(ctx context.Context, appID, notes string, mtime int64) error {
	return r.update(ctx, appID, map[string]interface{}{
		"notes": notes,
		"mtime": mtime,
	})
}

func (r *ApplicationRepo) update(ctx context.Context, appID string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": appID}
	sqlStr, args, err := builder.BuildUpdate("applications", where, update)
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

func (r *ApplicationRepo) CreateStatusLog(ctx context.Context, log *model.ApplicationStatusLog) error {
	data := map[string]interface{}{
		"id":             log.ID,
		"application_id": log.ApplicationID,
		"old_status":     log.OldStatus,
		"new_status":     log.NewStatus,
		"changed_by":     log.ChangedBy,
		"reason":         log.Reason,
		"ctime":          log.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("application_status_logs", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ApplicationRepo) ListStatusLogs(ctx context.Context, appID string) ([]*model.ApplicationStatusLog, error) {
	where := map[string]interface{}{
		"application_id": appID,
		"_orderby":       "ctime asc",
	}
	columns := []string{"id", "application_id", "old_status", "new_status", "changed_by", "reason", "ctime"}
	sqlStr, args, err := builder.BuildSelect("application_status_logs", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var logs []*model.ApplicationStatusLog
	for rows.Next() {
		var log model.ApplicationStatusLog
		if err := rows.Scan(&log.ID, &log.ApplicationID, &log.OldStatus, &log.NewStatus, &log.ChangedBy, &log.Reason, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}
