package model

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

type Job struct {
	ID                  string   `json:"id"`
	RecruiterID         string   `json:"recruiter_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Company             string   `json:"company"`
	Location            string   `json:"location"`
	SalaryMin           *float64 `json:"salary_min"`
	SalaryMax           *float64 `json:"salary_max"`
	SalaryCurrency      string   `json:"salary_currency"`
	JobType             string   `json:"job_type"`
	ExperienceLevel     string   `json:"experience_level"`
	RequiredSkills      string   `json:"required_skills"`
	PreferredSkills     string   `json:"preferred_skills"`
	IsActive            int      `json:"is_active"`
	ApplicationDeadline *int64   `json:"application_deadline"`
	Ctime               int64    `json:"ctime"`
	Mtime               int64    `json:"mtime"`
}
