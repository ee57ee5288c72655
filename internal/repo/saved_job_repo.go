package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

type SavedJobRepo struct {
	db *sql.DB
}

func NewSavedJobRepo(db *sql.DB) *SavedJobRepo {
	return &SavedJobRepo{db: db}
}

func (r *SavedJobRepo) Save(ctx context.Context, item *model.SavedJob) error {
	data := map[string]interface{}{
		"job_id":  item.JobID,
		"user_id": item.UserID,
		"ctime":   item.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("saved_jobs", []map[string]interface{}{data})
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

func (r *SavedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	where := map[string]interface{}{"user_id": userID, "job_id": jobID}
	sqlStr, args, err := builder.BuildDelete("saved_jobs", where)
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

func (r *SavedJobRepo) ListJobIDs(ctx context.Context, userID string) ([]string, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("saved_jobs", where, []string{"job_id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
