package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hirelink/hirelink/internal/model"
	"github.com/hirelink/hirelink/internal/pkg/dbutil"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

var userColumns = []string{
	"id", "email", "password_hash", "role", "full_name", "phone",
	"headline", "location", "bio", "skills", "experience_level",
	"preferred_job_type", "remote_preference", "desired_salary",
	"resume_key", "ctime", "mtime",
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(rows *sql.Rows) (*model.User, error) {
	var user model.User
	if err := rows.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.FullName,
		&user.Phone, &user.Headline, &user.Location, &user.Bio, &user.Skills,
		&user.ExperienceLevel, &user.PreferredJobType, &user.RemotePreference,
		&user.DesiredSalary, &user.ResumeKey, &user.Ctime, &user.Mtime,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":                 user.ID,
		"email":              user.Email,
		"password_hash":      user.PasswordHash,
		"role":               user.Role,
		"full_name":          user.FullName,
		"phone":              user.Phone,
		"headline":           user.Headline,
		"location":           user.Location,
		"bio":                user.Bio,
		"skills":             user.Skills,
		"experience_level":   user.ExperienceLevel,
		"preferred_job_type": user.PreferredJobType,
		"remote_preference":  user.RemotePreference,
		"desired_salary":     user.DesiredSalary,
		"resume_key":         user.ResumeKey,
		"ctime":              user.Ctime,
		"mtime":              user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
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

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
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
	return scanUser(rows)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

// UpdateProfile applies a partial update; the caller builds the column map.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, update map[string]interface{}) error {
	if len(update) == 0 {
		return nil
	}
	where := map[string]interface{}{"id": userID}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
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

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error {
	return r.UpdateProfile(ctx, userID, map[string]interface{}{
		"password_hash": passwordHash,
		"mtime":         mtime,
	})
}

func (r *UserRepo) UpdateResumeKey(ctx context.Context, userID, resumeKey string, mtime int64) error {
	return r.UpdateProfile(ctx, userID, map[string]interface{}{
		"resume_key": resumeKey,
		"mtime":      mtime,
	})
}
