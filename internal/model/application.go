package model

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusOffered     = "offered"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusWithdrawn   = "withdrawn"
)

type Application struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeKey   string `json:"resume_key"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}

type ApplicationStatusLog struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	ChangedBy     string `json:"changed_by"`
	Reason        string `json:"reason"`
	Ctime         int64  `json:"ctime"`
}
