package model

const (
	NotificationApplicationStatus  = "application_status"
	NotificationInterviewScheduled = "interview_scheduled"
	NotificationInterviewReminder  = "interview_reminder"
)

type Notification struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	NotificationType string `json:"notification_type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	RelatedID        string `json:"related_id"`
	IsRead           int    `json:"is_read"`
	Ctime            int64  `json:"ctime"`
}

type SavedJob struct {
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`
	Ctime  int64  `json:"ctime"`
}
