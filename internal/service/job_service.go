package service

import (
	"context"
	"strings"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

type JobService struct {
	jobs  *repo.JobRepo
	saved *repo.SavedJobRepo
}

func NewJobService(jobs *repo.JobRepo, saved *repo.SavedJobRepo) *JobService {
	return &JobService{jobs: jobs, saved: saved}
}

// JobInput is the creatable/updatable subset of a posting.
type JobInput struct {
	Title               string
	Description         string
	Company             string
	Location            string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryCurrency      string
	JobType             string
	ExperienceLevel     string
	RequiredSkills      string
	PreferredSkills     string
	ApplicationDeadline *int64
}

func (in *JobInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return appErr.ErrInvalid
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return appErr.ErrInvalid
	}
	return nil
}

func (s *JobService) Create(ctx context.Context, recruiterID string, in JobInput) (*model.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	job := &model.Job{
		ID:                  newID(),
		RecruiterID:         recruiterID,
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		Company:             strings.TrimSpace(in.Company),
		Location:            strings.TrimSpace(in.Location),
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		SalaryCurrency:      in.SalaryCurrency,
		JobType:             in.JobType,
		ExperienceLevel:     in.ExperienceLevel,
		RequiredSkills:      in.RequiredSkills,
		PreferredSkills:     in.PreferredSkills,
		IsActive:            1,
		ApplicationDeadline: in.ApplicationDeadline,
		Ctime:               now,
		Mtime:               now,
	}
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = "USD"
	}
	if job.JobType == "" {
		job.JobType = model.JobTypeFullTime
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Get(ctx context.Context, jobID string) (*model.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *JobService) List(ctx context.Context, filter repo.JobFilter) ([]*model.Job, error) {
	return s.jobs.List(ctx, filter)
}

// Update rejects callers that do not own the posting unless they are admin.
func (s *JobService) Update(ctx context.Context, actorID, actorRole, jobID string, in JobInput) (*model.Job, error) {
	job, err := s.authorize(ctx, actorID, actorRole, jobID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	update := map[string]interface{}{
		"title":                strings.TrimSpace(in.Title),
		"description":          in.Description,
		"company":              strings.TrimSpace(in.Company),
		"location":             strings.TrimSpace(in.Location),
		"salary_min":           in.SalaryMin,
		"salary_max":           in.SalaryMax,
		"job_type":             in.JobType,
		"experience_level":     in.ExperienceLevel,
		"required_skills":      in.RequiredSkills,
		"preferred_skills":     in.PreferredSkills,
		"application_deadline": in.ApplicationDeadline,
		"mtime":                timeutil.NowUnix(),
	}
	if in.SalaryCurrency != "" {
		update["salary_currency"] = in.SalaryCurrency
	}
	if err := s.jobs.Update(ctx, job.ID, update); err != nil {
		return nil, err
	}
	return s.jobs.GetByID(ctx, job.ID)
}

func (s *JobService) SetActive(ctx context.Context, actorID, actorRole, jobID string, active bool) error {
	job, err := s.authorize(ctx, actorID, actorRole, jobID)
	if err != nil {
		return err
	}
	isActive := 0
	if active {
		isActive = 1
	}
	return s.jobs.Update(ctx, job.ID, map[string]interface{}{
		"is_active": isActive,
		"mtime":     timeutil.NowUnix(),
	})
}

func (s *JobService) Delete(ctx context.Context, actorID, actorRole, jobID string) error {
	job, err := s.authorize(ctx, actorID, actorRole, jobID)
	if err != nil {
		return err
	}
	// Postings with history are deactivated rather than dropped so
	// existing applications keep their referent.
	return s.jobs.Update(ctx, job.ID, map[string]interface{}{
		"is_active": 0,
		"mtime":     timeutil.NowUnix(),
	})
}

func (s *JobService) authorize(ctx context.Context, actorID, actorRole, jobID string) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.RoleAdmin && job.RecruiterID != actorID {
		return nil, appErr.ErrForbidden
	}
	return job, nil
}

func (s *JobService) SaveJob(ctx context.Context, userID, jobID string) error {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	err := s.saved.Save(ctx, &model.SavedJob{
		JobID:  jobID,
		UserID: userID,
		Ctime:  timeutil.NowUnix(),
	})
	if err == appErr.ErrConflict {
		// Saving twice is a no-op.
		return nil
	}
	return err
}

func (s *JobService) UnsaveJob(ctx context.Context, userID, jobID string) error {
	return s.saved.Delete(ctx, userID, jobID)
}

func (s *JobService) ListSavedJobs(ctx context.Context, userID string) ([]*model.Job, error) {
	ids, err := s.saved.ListJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	jobs := make([]*model.Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.jobs.GetByID(ctx, id)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
