package service_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
	"github.com/hirelink/hirelink/internal/service"
	"github.com/hirelink/hirelink/test/testutil"
)

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func seedUser(t *testing.T, users *repo.UserRepo, role string) *model.User {
	t.Helper()
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newTestID(),
		Email:        fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
		Ctime:        now,
		Mtime:        now,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedJob(t *testing.T, jobs *repo.JobRepo, recruiterID string) *model.Job {
	t.Helper()
	now := timeutil.NowUnix()
	job := &model.Job{
		ID:              newTestID(),
		RecruiterID:     recruiterID,
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Berlin",
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: "mid",
		RequiredSkills:  "go, postgresql",
		IsActive:        1,
		Ctime:           now,
		Mtime:           now,
	}
	require.NoError(t, jobs.Create(context.Background(), job))
	return job
}

func TestApplicationLifecycle(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)
	notifications := service.NewNotificationService(notificationRepo)
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)
	job := seedJob(t, jobRepo, recruiter.ID)

	app, err := applications.Apply(ctx, candidate.ID, job.ID, "cover", "")
	require.NoError(t, err)
	require.Equal(t, model.ApplicationStatusPending, app.Status)

	// the recruiter is notified about the new application
	count, err := notifications.CountUnread(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// a second application for the same job conflicts
	_, err = applications.Apply(ctx, candidate.ID, job.ID, "", "")
	require.ErrorIs(t, err, appErr.ErrConflict)

	// recruiters cannot apply to their own postings
	_, err = applications.Apply(ctx, recruiter.ID, job.ID, "", "")
	require.ErrorIs(t, err, appErr.ErrForbidden)

	for _, status := range []string{
		model.ApplicationStatusReviewing,
		model.ApplicationStatusShortlisted,
		model.ApplicationStatusInterviewed,
		model.ApplicationStatusOffered,
	} {
		app, err = applications.UpdateStatus(ctx, recruiter.ID, model.RoleRecruiter, app.ID, status, "")
		require.NoError(t, err)
		require.Equal(t, status, app.Status)
	}

	// offered is terminal
	_, err = applications.UpdateStatus(ctx, recruiter.ID, model.RoleRecruiter, app.ID, model.ApplicationStatusRejected, "")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	logs, err := applications.StatusHistory(ctx, candidate.ID, model.RoleCandidate, app.ID)
	require.NoError(t, err)
	require.Len(t, logs, 4)
	require.Equal(t, model.ApplicationStatusPending, logs[0].OldStatus)
	require.Equal(t, model.ApplicationStatusOffered, logs[3].NewStatus)
}

func TestApplicationInvalidTransitions(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	notifications := service.NewNotificationService(repo.NewNotificationRepo(db))
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)
	job := seedJob(t, jobRepo, recruiter.ID)

	app, err := applications.Apply(ctx, candidate.ID, job.ID, "", "")
	require.NoError(t, err)

	// pending cannot jump straight to offered or interviewed
	for _, status := range []string{model.ApplicationStatusOffered, model.ApplicationStatusInterviewed} {
		_, err = applications.UpdateStatus(ctx, recruiter.ID, model.RoleRecruiter, app.ID, status, "")
		require.ErrorIs(t, err, appErr.ErrInvalid)
	}

	// another recruiter cannot touch the application
	other := seedUser(t, userRepo, model.RoleRecruiter)
	_, err = applications.UpdateStatus(ctx, other.ID, model.RoleRecruiter, app.ID, model.ApplicationStatusReviewing, "")
	require.ErrorIs(t, err, appErr.ErrForbidden)
}

func TestApplicationWithdraw(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	notifications := service.NewNotificationService(repo.NewNotificationRepo(db))
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)
	job := seedJob(t, jobRepo, recruiter.ID)

	app, err := applications.Apply(ctx, candidate.ID, job.ID, "", "")
	require.NoError(t, err)

	// only the owning candidate may withdraw
	require.ErrorIs(t, applications.Withdraw(ctx, recruiter.ID, app.ID), appErr.ErrForbidden)

	require.NoError(t, applications.Withdraw(ctx, candidate.ID, app.ID))

	got, err := applications.Get(ctx, candidate.ID, model.RoleCandidate, app.ID)
	require.NoError(t, err)
	require.Equal(t, model.ApplicationStatusWithdrawn, got.Status)

	// withdrawn is terminal
	require.ErrorIs(t, applications.Withdraw(ctx, candidate.ID, app.ID), appErr.ErrInvalid)
}

func TestApplyChecksDeadlineAndActive(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	notifications := service.NewNotificationService(repo.NewNotificationRepo(db))
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)

	inactive := seedJob(t, jobRepo, recruiter.ID)
	require.NoError(t, jobRepo.Update(ctx, inactive.ID, map[string]interface{}{"is_active": 0}))
	_, err := applications.Apply(ctx, candidate.ID, inactive.ID, "", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	expired := seedJob(t, jobRepo, recruiter.ID)
	past := timeutil.NowUnix() - 3600
	require.NoError(t, jobRepo.Update(ctx, expired.ID, map[string]interface{}{"application_deadline": past}))
	_, err = applications.Apply(ctx, candidate.ID, expired.ID, "", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
