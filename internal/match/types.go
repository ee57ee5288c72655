package match

// JobRecord is an immutable snapshot of a job posting taken at index build
// time. Skill fields are comma-separated strings as stored; the encoder
// normalizes them.
type JobRecord struct {
	ID              string
	Title           string
	Company         string
	Location        string
	JobType         string
	ExperienceLevel string
	SalaryMin       *float64
	SalaryMax       *float64
	RequiredSkills  string
	PreferredSkills string
}

type CandidateProfile struct {
	ID               string
	Skills           string
	ExperienceLevel  string
	PreferredJobType string
	RemotePreference string
	DesiredSalary    float64
	Location         string
}

type Recommendation struct {
	JobID           string   `json:"job_id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	MatchScore      float64  `json:"match_score"`
	SkillMatchPct   float64  `json:"skill_match_percentage"`
	MatchingSkills  []string `json:"matching_skills"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level"`
	Location        string   `json:"location"`
	Salary          float64  `json:"salary"`
	JobType         string   `json:"job_type"`
	IsRemote        bool     `json:"is_remote"`
	Rank            int      `json:"rank"`
	Distance        float64  `json:"distance"`
}
