package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/service"
)

// InterviewReminderJob notifies candidates about interviews starting inside
// the lookahead window.
type InterviewReminderJob struct {
	interviews *service.InterviewService
	window     time.Duration
}

func NewInterviewReminderJob(interviews *service.InterviewService, window time.Duration) *InterviewReminderJob {
	return &InterviewReminderJob{interviews: interviews, window: window}
}

func (j *InterviewReminderJob) Name() string {
	return "interview_reminder"
}

func (j *InterviewReminderJob) Run(ctx context.Context) error {
	if j.interviews == nil {
		return nil
	}
	window := j.window
	if window <= 0 {
		window = 24 * time.Hour
	}
	sent, err := j.interviews.SendDueReminders(ctx, window)
	if err != nil {
		return err
	}
	if sent > 0 {
		logutil.GetLogger(ctx).Info("interview reminders sent", zap.Int("count", sent))
	}
	return nil
}
