package service

import (
	"context"
	"fmt"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

// allowedTransitions encodes the application lifecycle. Withdrawn is
// reachable from any non-terminal status but only by the candidate.
var allowedTransitions = map[string][]string{
	model.ApplicationStatusPending:     {model.ApplicationStatusReviewing, model.ApplicationStatusShortlisted, model.ApplicationStatusRejected},
	model.ApplicationStatusReviewing:   {model.ApplicationStatusShortlisted, model.ApplicationStatusRejected},
	model.ApplicationStatusShortlisted: {model.ApplicationStatusInterviewed, model.ApplicationStatusRejected},
	model.ApplicationStatusInterviewed: {model.ApplicationStatusOffered, model.ApplicationStatusRejected},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ApplicationService struct {
	applications  *repo.ApplicationRepo
	jobs          *repo.JobRepo
	notifications *NotificationService
}

func NewApplicationService(applications *repo.ApplicationRepo, jobs *repo.JobRepo, notifications *NotificationService) *ApplicationService {
	return &ApplicationService{
		applications:  applications,
		jobs:          jobs,
		notifications: notifications,
	}
}

// Apply submits a candidate application to an active posting. A second
// application to the same job fails with a conflict.
func (s *ApplicationService) Apply(ctx context.Context, candidateID, jobID, coverLetter, resumeKey string) (*model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	if job.IsActive == 0 {
		return nil, appErr.ErrInvalid
	}
	if job.ApplicationDeadline != nil && *job.ApplicationDeadline < now {
		return nil, appErr.ErrInvalid
	}
	if job.RecruiterID == candidateID {
		return nil, appErr.ErrForbidden
	}
	app := &model.Application{
		ID:          newID(),
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: coverLetter,
		ResumeKey:   resumeKey,
		Status:      model.ApplicationStatusPending,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	s.notifications.Notify(ctx, job.RecruiterID, model.NotificationApplicationStatus,
		"New application received",
		fmt.Sprintf("A candidate applied to %s", job.Title), app.ID)
	return app, nil
}

// Get returns the application when the caller is the candidate, the owning
// recruiter or an admin.
func (s *ApplicationService) Get(ctx context.Context, actorID, actorRole, appID string) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, actorRole, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) authorize(ctx context.Context, actorID, actorRole string, app *model.Application) error {
	if actorRole == model.RoleAdmin || app.CandidateID == actorID {
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

func (s *ApplicationService) ListMine(ctx context.Context, candidateID string) ([]*model.Application, error) {
	return s.applications.ListByCandidate(ctx, candidateID)
}

// List is the role-scoped view: candidates see their own applications,
// recruiters see applications across their postings.
func (s *ApplicationService) List(ctx context.Context, actorID, actorRole string) ([]*model.Application, error) {
	switch actorRole {
	case model.RoleCandidate:
		return s.applications.ListByCandidate(ctx, actorID)
	case model.RoleRecruiter, model.RoleAdmin:
		return s.applications.ListByRecruiter(ctx, actorID)
	default:
		return nil, appErr.ErrForbidden
	}
}

func (s *ApplicationService) ListForJob(ctx context.Context, actorID, actorRole, jobID string) ([]*model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.RoleAdmin && job.RecruiterID != actorID {
		return nil, appErr.ErrForbidden
	}
	return s.applications.ListByJob(ctx, jobID)
}

// UpdateStatus moves an application along the lifecycle, writes a status
// log and notifies the candidate.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actorID, actorRole, appID, newStatus, reason string) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, appID)
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
	if !transitionAllowed(app.Status, newStatus) {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	if err := s.applications.UpdateStatus(ctx, appID, newStatus, now); err != nil {
		return nil, err
	}
	if err := s.applications.CreateStatusLog(ctx, &model.ApplicationStatusLog{
		ID:            newID(),
		ApplicationID: appID,
		OldStatus:     app.Status,
		NewStatus:     newStatus,
		ChangedBy:     actorID,
		Reason:        reason,
		Ctime:         now,
	}); err != nil {
		return nil, err
	}
	s.notifications.Notify(ctx, app.CandidateID, model.NotificationApplicationStatus,
		"Application status updated",
		fmt.Sprintf("Your application for %s is now %s", job.Title, newStatus), appID)
	app.Status = newStatus
	app.Mtime = now
	return app, nil
}

// Withdraw lets the candidate pull out of any non-terminal application.
func (s *ApplicationService) Withdraw(ctx context.Context, candidateID, appID string) error {
	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	if app.CandidateID != candidateID {
		return appErr.ErrForbidden
	}
	switch app.Status {
	case model.ApplicationStatusOffered, model.ApplicationStatusRejected, model.ApplicationStatusWithdrawn:
		return appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	if err := s.applications.UpdateStatus(ctx, appID, model.ApplicationStatusWithdrawn, now); err != nil {
		return err
	}
	return s.applications.CreateStatusLog(ctx, &model.ApplicationStatusLog{
		ID:            newID(),
		ApplicationID: appID,
		OldStatus:     app.Status,
		NewStatus:     model.ApplicationStatusWithdrawn,
		ChangedBy:     candidateID,
		Ctime:         now,
	})
}

func (s *ApplicationService) StatusHistory(ctx context.Context, actorID, actorRole, appID string) ([]*model.ApplicationStatusLog, error) {
	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, actorRole, app); err != nil {
		return nil, err
	}
	return s.applications.ListStatusLogs(ctx, appID)
}

func (s *ApplicationService) UpdateNotes(ctx context.Context, actorID, actorRole, appID, notes string) error {
	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if actorRole != model.RoleAdmin && job.RecruiterID != actorID {
		return appErr.ErrForbidden
	}
	return s.applications.UpdateNotes(ctx, appID, notes, timeutil.NowUnix())
}
