package model

const (
	InterviewTypePhone     = "phone"
	InterviewTypeVideo     = "video"
	InterviewTypeOnsite    = "onsite"
	InterviewTypeTechnical = "technical"
)

type Interview struct {
	ID              string `json:"id"`
	ApplicationID   string `json:"application_id"`
	InterviewerID   string `json:"interviewer_id"`
	ScheduledAt     int64  `json:"scheduled_at"`
	DurationMinutes int    `json:"duration_minutes"`
	InterviewType   string `json:"interview_type"`
	MeetingLink     string `json:"meeting_link"`
	Notes           string `json:"notes"`
	Feedback        string `json:"feedback"`
	Reminded        int    `json:"reminded"`
	Ctime           int64  `json:"ctime"`
	Mtime           int64  `json:"mtime"`
}
