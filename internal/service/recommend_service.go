package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/match"
	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

// RecommendService owns the in-memory match index: it rebuilds it from the
// job catalog, persists each build for warm restarts and serves candidate
// recommendations from the published index.
type RecommendService struct {
	users   *repo.UserRepo
	jobs    *repo.JobRepo
	vectors *repo.JobVectorRepo
	matcher *match.Matcher
}

func NewRecommendService(users *repo.UserRepo, jobs *repo.JobRepo, vectors *repo.JobVectorRepo) *RecommendService {
	return &RecommendService{
		users:   users,
		jobs:    jobs,
		vectors: vectors,
		matcher: match.NewMatcher(),
	}
}

func jobToRecord(job *model.Job) match.JobRecord {
	return match.JobRecord{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		RequiredSkills:  job.RequiredSkills,
		PreferredSkills: job.PreferredSkills,
		ExperienceLevel: job.ExperienceLevel,
		JobType:         job.JobType,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
	}
}

// Rebuild encodes the current active catalog into a fresh index, persists
// it and atomically swaps it in.
func (s *RecommendService) Rebuild(ctx context.Context) (*match.Index, error) {
	start := time.Now()
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]match.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		records = append(records, jobToRecord(job))
	}
	idx, err := s.matcher.Build(records)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, idx); err != nil {
		// The in-memory index is already live; the next rebuild retries
		// persistence.
		logutil.GetLogger(ctx).Error("persist match index failed", zap.Error(err))
	}
	logutil.GetLogger(ctx).Info("match index rebuilt",
		zap.String("build_version", idx.Version()),
		zap.Int("job_count", idx.JobCount()),
		zap.Int("dimension", idx.Dimension()),
		zap.Duration("cost", time.Since(start)))
	return idx, nil
}

func (s *RecommendService) persist(ctx context.Context, idx *match.Index) error {
	meta, err := indexMeta(idx)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	snapshots := idx.Vectors()
	vectors := make([]*model.JobVector, 0, len(snapshots))
	for pos, snap := range snapshots {
		embedding := make([]float32, len(snap.Vector))
		for i, v := range snap.Vector {
			embedding[i] = float32(v)
		}
		vectors = append(vectors, &model.JobVector{
			JobID:        snap.JobID,
			BuildVersion: idx.Version(),
			Embedding:    embedding,
			Position:     pos,
			Ctime:        now,
		})
	}
	meta.Ctime = now
	return s.vectors.ReplaceBuild(ctx, meta, vectors)
}

func indexMeta(idx *match.Index) (*model.MatchIndexMeta, error) {
	m := idx.Meta()
	vocab, err := json.Marshal(m.Vocabulary)
	if err != nil {
		return nil, err
	}
	locations, err := json.Marshal(m.Locations)
	if err != nil {
		return nil, err
	}
	return &model.MatchIndexMeta{
		BuildVersion: m.Version,
		Vocabulary:   string(vocab),
		Locations:    string(locations),
		JobCount:     m.JobCount,
		Dimension:    m.Dimension,
	}, nil
}

// WarmLoad restores the last persisted build instead of re-encoding the
// catalog. Falls back with an error when no usable build exists; the caller
// decides whether to rebuild.
func (s *RecommendService) WarmLoad(ctx context.Context) error {
	meta, err := s.vectors.LatestMeta(ctx)
	if err != nil {
		return err
	}
	stored, err := s.vectors.LoadVectors(ctx, meta.BuildVersion)
	if err != nil {
		return err
	}
	var vocabulary []string
	if err := json.Unmarshal([]byte(meta.Vocabulary), &vocabulary); err != nil {
		return err
	}
	var locations map[string]int
	if err := json.Unmarshal([]byte(meta.Locations), &locations); err != nil {
		return err
	}
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(jobs) != meta.JobCount || len(stored) != meta.JobCount {
		return appErr.ErrIndexNotBuilt
	}
	// The catalog must still be the exact job set that was built; records
	// follow the persisted positions so tie-breaks replay identically.
	byID := make(map[string]*model.Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	records := make([]match.JobRecord, 0, len(stored))
	vectors := make(map[string][]float64, len(stored))
	for _, vec := range stored {
		job, ok := byID[vec.JobID]
		if !ok {
			return appErr.ErrIndexNotBuilt
		}
		records = append(records, jobToRecord(job))
		converted := make([]float64, len(vec.Embedding))
		for i, v := range vec.Embedding {
			converted[i] = float64(v)
		}
		vectors[vec.JobID] = converted
	}
	idx, err := match.Restore(match.Meta{
		Version:    meta.BuildVersion,
		Vocabulary: vocabulary,
		Locations:  locations,
		JobCount:   meta.JobCount,
		Dimension:  meta.Dimension,
	}, records, vectors)
	if err != nil {
		return err
	}
	s.matcher.Publish(idx)
	logutil.GetLogger(ctx).Info("match index restored",
		zap.String("build_version", idx.Version()),
		zap.Int("job_count", idx.JobCount()))
	return nil
}

func (s *RecommendService) Ready() bool {
	return s.matcher.Ready()
}

// Recommend ranks active jobs for the candidate's stored profile.
func (s *RecommendService) Recommend(ctx context.Context, userID string, n int) ([]match.Recommendation, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := match.CandidateProfile{
		Skills:           user.Skills,
		Location:         user.Location,
		ExperienceLevel:  user.ExperienceLevel,
		PreferredJobType: user.PreferredJobType,
		RemotePreference: user.RemotePreference,
		DesiredSalary:    user.DesiredSalary,
	}
	return s.matcher.Recommend(profile, n)
}

// IndexInfo is the admin-facing view of the live index.
type IndexInfo struct {
	BuildVersion string `json:"build_version"`
	JobCount     int    `json:"job_count"`
	Dimension    int    `json:"dimension"`
}

func (s *RecommendService) Info() (*IndexInfo, error) {
	idx, err := s.matcher.Snapshot()
	if err != nil {
		return nil, err
	}
	return &IndexInfo{
		BuildVersion: idx.Version(),
		JobCount:     idx.JobCount(),
		Dimension:    idx.Dimension(),
	}, nil
}
