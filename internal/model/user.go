package model

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

type User struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	PasswordHash     string  `json:"-"`
	Role             string  `json:"role"`
	FullName         string  `json:"full_name"`
	Phone            string  `json:"phone"`
	Headline         string  `json:"headline"`
	Location         string  `json:"location"`
	Bio              string  `json:"bio"`
	Skills           string  `json:"skills"`
	ExperienceLevel  string  `json:"experience_level"`
	PreferredJobType string  `json:"preferred_job_type"`
	RemotePreference string  `json:"remote_preference"`
	DesiredSalary    float64 `json:"desired_salary"`
	ResumeKey        string  `json:"resume_key,omitempty"`
	Ctime            int64   `json:"ctime"`
	Mtime            int64   `json:"mtime"`
}
