package service_test

import (
	"context"
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

func TestInterviewScheduleAndReminders(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	interviewRepo := repo.NewInterviewRepo(db)
	notifications := service.NewNotificationService(repo.NewNotificationRepo(db))
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)
	interviews := service.NewInterviewService(interviewRepo, applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)
	job := seedJob(t, jobRepo, recruiter.ID)

	app, err := applications.Apply(ctx, candidate.ID, job.ID, "", "")
	require.NoError(t, err)

	// interviews cannot be scheduled in the past
	_, err = interviews.Schedule(ctx, recruiter.ID, model.RoleRecruiter, service.InterviewInput{
		ApplicationID: app.ID,
		ScheduledAt:   timeutil.NowUnix() - 60,
	})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	// only the owning recruiter may schedule
	other := seedUser(t, userRepo, model.RoleRecruiter)
	_, err = interviews.Schedule(ctx, other.ID, model.RoleRecruiter, service.InterviewInput{
		ApplicationID: app.ID,
		ScheduledAt:   timeutil.NowUnix() + 3600,
	})
	require.ErrorIs(t, err, appErr.ErrForbidden)

	iv, err := interviews.Schedule(ctx, recruiter.ID, model.RoleRecruiter, service.InterviewInput{
		ApplicationID: app.ID,
		ScheduledAt:   timeutil.NowUnix() + 3600,
	})
	require.NoError(t, err)
	require.Equal(t, 60, iv.DurationMinutes)
	require.Equal(t, model.InterviewTypeVideo, iv.InterviewType)

	// candidate sees it, strangers do not
	_, err = interviews.Get(ctx, candidate.ID, model.RoleCandidate, iv.ID)
	require.NoError(t, err)
	stranger := seedUser(t, userRepo, model.RoleCandidate)
	_, err = interviews.Get(ctx, stranger.ID, model.RoleCandidate, iv.ID)
	require.ErrorIs(t, err, appErr.ErrForbidden)

	// the interview falls inside the reminder window exactly once
	unreadBefore, err := notifications.CountUnread(ctx, candidate.ID)
	require.NoError(t, err)
	sent, err := interviews.SendDueReminders(ctx, 2*time.Hour)
	require.NoError(t, err)
	require.GreaterOrEqual(t, sent, 1)
	unreadAfter, err := notifications.CountUnread(ctx, candidate.ID)
	require.NoError(t, err)
	require.Greater(t, unreadAfter, unreadBefore)

	sentAgain, err := interviews.SendDueReminders(ctx, 2*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 0, sentAgain)
}

func TestInterviewRescheduleResetsReminder(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	interviewRepo := repo.NewInterviewRepo(db)
	notifications := service.NewNotificationService(repo.NewNotificationRepo(db))
	applications := service.NewApplicationService(applicationRepo, jobRepo, notifications)
	interviews := service.NewInterviewService(interviewRepo, applicationRepo, jobRepo, notifications)

	recruiter := seedUser(t, userRepo, model.RoleRecruiter)
	candidate := seedUser(t, userRepo, model.RoleCandidate)
	job := seedJob(t, jobRepo, recruiter.ID)
	app, err := applications.Apply(ctx, candidate.ID, job.ID, "", "")
	require.NoError(t, err)

	iv, err := interviews.Schedule(ctx, recruiter.ID, model.RoleRecruiter, service.InterviewInput{
		ApplicationID: app.ID,
		ScheduledAt:   timeutil.NowUnix() + 1800,
	})
	require.NoError(t, err)

	_, err = interviews.SendDueReminders(ctx, time.Hour)
	require.NoError(t, err)
	got, err := interviews.Get(ctx, recruiter.ID, model.RoleRecruiter, iv.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Reminded)

	later := timeutil.NowUnix() + 7200
	_, err = interviews.Update(ctx, recruiter.ID, model.RoleRecruiter, iv.ID, service.InterviewUpdate{
		ScheduledAt: &later,
	})
	require.NoError(t, err)

	got, err = interviews.Get(ctx, recruiter.ID, model.RoleRecruiter, iv.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Reminded)
	require.Equal(t, later, got.ScheduledAt)
}
