package job

import (
	"context"

	"github.com/hirelink/hirelink/internal/service"
)

// MatchRebuildJob periodically re-encodes the active job catalog into a
// fresh match index so recommendations track catalog changes.
type MatchRebuildJob struct {
	recommend *service.RecommendService
}

func NewMatchRebuildJob(recommend *service.RecommendService) *MatchRebuildJob {
	return &MatchRebuildJob{recommend: recommend}
}

func (j *MatchRebuildJob) Name() string {
	return "match_rebuild"
}

func (j *MatchRebuildJob) Run(ctx context.Context) error {
	if j.recommend == nil {
		return nil
	}
	_, err := j.recommend.Rebuild(ctx)
	return err
}
