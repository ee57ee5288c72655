package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

var jobColumns = []string{
	"id", "recruiter_id", "title", "description", "company", "location",
	"salary_min", "salary_max", "salary_currency", "job_type",
	"experience_level", "required_skills", "preferred_skills",
	"is_active", "application_deadline", "ctime", "mtime",
}

// JobFilter narrows job listings. Zero values are ignored.
type JobFilter struct {
	Keyword     string
	Location    string
	JobType     string
	RecruiterID string
	ActiveOnly  bool
	Limit       uint
	Offset      uint
}

type JobRepo struct {
	db *sql.DB
}

func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

func scanJob(rows *sql.Rows) (*model.Job, error) {
	var job model.Job
	if err := rows.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Company,
		&job.Location, &job.SalaryMin, &job.SalaryMax, &job.SalaryCurrency,
		&job.JobType, &job.ExperienceLevel, &job.RequiredSkills,
		&job.PreferredSkills, &job.IsActive, &job.ApplicationDeadline,
		&job.Ctime, &job.Mtime,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepo) Create(ctx context.Context, job *model.Job) error {
	data := map[string]interface{}{
		"id":                   job.ID,
		"recruiter_id":         job.RecruiterID,
		"title":                job.Title,
		"description":          job.Description,
		"company":              job.Company,
		"location":             job.Location,
		"salary_min":           job.SalaryMin,
		"salary_max":           job.SalaryMax,
		"salary_currency":      job.SalaryCurrency,
		"job_type":             job.JobType,
		"experience_level":     job.ExperienceLevel,
		"required_skills":      job.RequiredSkills,
		"preferred_skills":     job.PreferredSkills,
		"is_active":            job.IsActive,
		"application_deadline": job.ApplicationDeadline,
		"ctime":                job.Ctime,
		"mtime":                job.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("jobs", []map[string]interface{}{data})
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

func (r *JobRepo) GetByID(ctx context.Context, jobID string) (*model.Job, error) {
	where := map[string]interface{}{"id": jobID}
	sqlStr, args, err := builder.BuildSelect("jobs", where, jobColumns)
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
	return scanJob(rows)
}

func (r *JobRepo) List(ctx context.Context, filter JobFilter) ([]*model.Job, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	if filter.ActiveOnly {
		where["is_active"] = 1
	}
	if filter.RecruiterID != "" {
		where["recruiter_id"] = filter.RecruiterID
	}
	if filter.JobType != "" {
		where["job_type"] = filter.JobType
	}
	if filter.Location != "" {
		where["location like"] = "%" + filter.Location + "%"
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		where["_or"] = []map[string]interface{}{
			{"title like": pattern},
			{"company like": pattern},
			{"required_skills like": pattern},
		}
	}
	if filter.Limit > 0 {
		where["_limit"] = []uint{filter.Offset, filter.Limit}
	}
	sqlStr, args, err := builder.BuildSelect("jobs", where, jobColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var jobs []*model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ListActive returns every active job in insertion order. The match index
// build depends on this ordering being stable.
func (r *JobRepo) ListActive(ctx context.Context) ([]*model.Job, error) {
	where := map[string]interface{}{
		"is_active": 1,
		"_orderby":  "ctime asc, id asc",
	}
	sqlStr, args, err := builder.BuildSelect("jobs", where, jobColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var jobs []*model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *JobRepo) Update(ctx context.Context, jobID string, update map[string]interface{}) error {
	if len(update) == 0 {
		return nil
	}
	where := map[string]interface{}{"id": jobID}
	sqlStr, args, err := builder.BuildUpdate("jobs", where, update)
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

func (r *JobRepo) Delete(ctx context.Context, jobID string) error {
	where := map[string]interface{}{"id": jobID}
	sqlStr, args, err := builder.BuildDelete("jobs", where)
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

func (r *JobRepo) CountActive(ctx context.Context) (int, error) {
	where := map[string]interface{}{"is_active": 1}
	sqlStr, args, err := builder.BuildSelect("jobs", where, []string{"count(1)"})
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
