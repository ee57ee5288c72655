package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

type InterviewService struct {
	interviews    *repo.InterviewRepo
	applications  *repo.ApplicationRepo
	jobs          *repo.JobRepo
	notifications *NotificationService
}

func NewInterviewService(interviews *repo.InterviewRepo, applications *repo.ApplicationRepo, jobs *repo.JobRepo, notifications *NotificationService) *InterviewService {
	return &InterviewService{
		interviews:    interviews,
		applications:  applications,
		jobs:          jobs,
		notifications: notifications,
	}
}

type InterviewInput struct {
	ApplicationID   string
	ScheduledAt     int64
	DurationMinutes int
	InterviewType   string
	MeetingLink     string
	Notes           string
}

// Schedule books an interview for an application owned by the calling
// recruiter and notifies the candidate.
func (s *InterviewService) Schedule(ctx context.Context, actorID, actorRole string, in InterviewInput) (*model.Interview, error) {
	app, err := s.applications.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.RoleAdmin && job.RecruiterID != actorID {
		return nil, appErr.ErrForbidden
	}
	now := timeutil.NowUnix()
	if in.ScheduledAt <= now {
		return nil, appErr.ErrInvalid
	}
	iv := &model.Interview{
		ID:              newID(),
		ApplicationID:   in.ApplicationID,
		InterviewerID:   actorID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		InterviewType:   in.InterviewType,
		MeetingLink:     in.MeetingLink,
		Notes:           in.Notes,
		Ctime:           now,
		Mtime:           now,
	}
	if iv.DurationMinutes <= 0 {
		iv.DurationMinutes = 60
	}
	if iv.InterviewType == "" {
		iv.InterviewType = model.InterviewTypeVideo
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, err
	}
	when := time.Unix(in.ScheduledAt, 0).UTC().Format("2006-01-02 15:04 MST")
	s.notifications.Notify(ctx, app.CandidateID, model.NotificationInterviewScheduled,
		"Interview scheduled",
		fmt.Sprintf("An interview for %s is scheduled at %s", job.Title, when), iv.ID)
	return iv, nil
}

func (s *InterviewService) Get(ctx context.Context, actorID, actorRole, interviewID string) (*model.Interview, error) {
	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, actorRole, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (s *InterviewService) authorize(ctx context.Context, actorID, actorRole string, iv *model.Interview) error {
	if actorRole == model.RoleAdmin || iv.InterviewerID == actorID {
		return nil
	}
	app, err := s.applications.GetByID(ctx, iv.ApplicationID)
	if err != nil {
		return err
	}
	if app.CandidateID == actorID {
		return nil
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job.RecruiterID != actorID {
		return appErr.ErrForbidden
	}
	return nil
}

func (s *InterviewService) ListForApplication(ctx context.Context, actorID, actorRole, appID string) ([]*model.Interview, error) {
	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.RoleAdmin && app.CandidateID != actorID {
		job, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		if job.RecruiterID != actorID {
			return nil, appErr.ErrForbidden
		}
	}
	return s.interviews.ListByApplication(ctx, appID)
}

// ListMine returns the caller's interview calendar. Candidates see
// interviews on their applications, recruiters and admins see the ones
// they are set to conduct.
func (s *InterviewService) ListMine(ctx context.Context, actorID, actorRole string) ([]*model.Interview, error) {
	if actorRole == model.RoleCandidate {
		return s.interviews.ListByCandidate(ctx, actorID)
	}
	return s.interviews.ListByInterviewer(ctx, actorID)
}

type InterviewUpdate struct {
	ScheduledAt     *int64
	DurationMinutes *int
	InterviewType   *string
	MeetingLink     *string
	Notes           *string
	Feedback        *string
}

func (s *InterviewService) Update(ctx context.Context, actorID, actorRole, interviewID string, upd InterviewUpdate) (*model.Interview, error) {
	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.RoleAdmin && iv.InterviewerID != actorID {
		return nil, appErr.ErrForbidden
	}
	update := map[string]interface{}{}
	if upd.ScheduledAt != nil {
		if *upd.ScheduledAt <= timeutil.NowUnix() {
			return nil, appErr.ErrInvalid
		}
		update["scheduled_at"] = *upd.ScheduledAt
		// A moved interview needs its reminder again.
		update["reminded"] = 0
	}
	if upd.DurationMinutes != nil {
		update["duration_minutes"] = *upd.DurationMinutes
	}
	if upd.InterviewType != nil {
		update["interview_type"] = *upd.InterviewType
	}
	if upd.MeetingLink != nil {
		update["meeting_link"] = *upd.MeetingLink
	}
	if upd.Notes != nil {
		update["notes"] = *upd.Notes
	}
	if upd.Feedback != nil {
		update["feedback"] = *upd.Feedback
	}
	if len(update) > 0 {
		update["mtime"] = timeutil.NowUnix()
		if err := s.interviews.Update(ctx, interviewID, update); err != nil {
			return nil, err
		}
	}
	return s.interviews.GetByID(ctx, interviewID)
}

// SendDueReminders notifies candidates about interviews starting inside the
// window and marks them reminded. Returns the number of reminders sent.
func (s *InterviewService) SendDueReminders(ctx context.Context, window time.Duration) (int, error) {
	now := timeutil.NowUnix()
	due, err := s.interviews.ListDueReminders(ctx, now, now+int64(window.Seconds()))
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, iv := range due {
		app, err := s.applications.GetByID(ctx, iv.ApplicationID)
		if err != nil {
			continue
		}
		job, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			continue
		}
		when := time.Unix(iv.ScheduledAt, 0).UTC().Format("2006-01-02 15:04 MST")
		s.notifications.Notify(ctx, app.CandidateID, model.NotificationInterviewReminder,
			"Interview reminder",
			fmt.Sprintf("Your interview for %s starts at %s", job.Title, when), iv.ID)
		if err := s.interviews.MarkReminded(ctx, iv.ID, now); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
