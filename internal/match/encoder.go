package match

import (
	"strings"
)

// Feature weights: skill dimensions dominate so that skill overlap drives the
// geometric shortlist; the remaining five weights cover the fixed tail
// features [experience, location, salary, remote, job_type].
const (
	weightSkill      = 5.0
	weightExperience = 1.5
	weightLocation   = 1.0
	weightSalary     = 1.0
	weightRemote     = 0.8
	weightJobType    = 0.7
)

const tailFeatureCount = 5

var experienceLevels = map[string]float64{
	"entry":     1,
	"intern":    1,
	"junior":    2,
	"associate": 2,
	"mid":       3,
	"mid-level": 3,
	"middle":    3,
	"senior":    4,
	"lead":      4,
	"expert":    5,
	"principal": 5,
	"director":  5,
}

var jobTypes = map[string]float64{
	"full_time":  1,
	"part_time":  2,
	"contract":   3,
	"internship": 4,
	"temporary":  5,
	"freelance":  6,
	"remote":     7,
}

// ExtractSkills splits a comma-separated skills field into trimmed lowercase
// entries. Empty input yields nil.
func ExtractSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		skills = append(skills, p)
	}
	return skills
}

func skillSet(s string) map[string]struct{} {
	skills := ExtractSkills(s)
	set := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		set[sk] = struct{}{}
	}
	return set
}

func experienceOrdinal(level string) float64 {
	key := strings.ToLower(strings.TrimSpace(level))
	if v, ok := experienceLevels[key]; ok {
		return v
	}
	return 3
}

func jobTypeOrdinal(jobType string) float64 {
	key := strings.ToLower(strings.TrimSpace(jobType))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if v, ok := jobTypes[key]; ok {
		return v
	}
	return 1
}

// cleanSalary averages min/max when both are positive, falls back to
// whichever is positive, and degrades to 0 otherwise.
func cleanSalary(salaryMin, salaryMax *float64) float64 {
	minVal, maxVal := 0.0, 0.0
	if salaryMin != nil {
		minVal = *salaryMin
	}
	if salaryMax != nil {
		maxVal = *salaryMax
	}
	switch {
	case minVal > 0 && maxVal > 0:
		return (minVal + maxVal) / 2
	case minVal > 0:
		return minVal
	case maxVal > 0:
		return maxVal
	default:
		return 0
	}
}

func jobIsRemote(job JobRecord) bool {
	return strings.Contains(strings.ToLower(job.JobType), "remote") ||
		strings.Contains(strings.ToLower(job.Title), "remote")
}

func remoteFlag(pref string) float64 {
	switch strings.TrimSpace(pref) {
	case "true", "yes", "Yes", "1":
		return 1
	}
	return 0
}

// encodeSkills one-hot encodes a skill set against the frozen vocabulary.
// Skills absent from the vocabulary contribute nothing.
func encodeSkills(skills []string, vocabIndex map[string]int, n int) []float64 {
	vec := make([]float64, n)
	for _, sk := range skills {
		if idx, ok := vocabIndex[sk]; ok {
			vec[idx] = 1
		}
	}
	return vec
}

func jobTailFeatures(job JobRecord, locationOrdinal float64) []float64 {
	remote := 0.0
	if jobIsRemote(job) {
		remote = 1
	}
	return []float64{
		experienceOrdinal(job.ExperienceLevel),
		locationOrdinal,
		cleanSalary(job.SalaryMin, job.SalaryMax) / 1000.0,
		remote,
		jobTypeOrdinal(job.JobType),
	}
}

func candidateTailFeatures(c CandidateProfile, locationOrdinal float64) []float64 {
	return []float64{
		experienceOrdinal(c.ExperienceLevel),
		locationOrdinal,
		c.DesiredSalary / 1000.0,
		remoteFlag(c.RemotePreference),
		jobTypeOrdinal(c.PreferredJobType),
	}
}

func buildWeights(nSkills int) []float64 {
	weights := make([]float64, 0, nSkills+tailFeatureCount)
	for i := 0; i < nSkills; i++ {
		weights = append(weights, weightSkill)
	}
	weights = append(weights, weightExperience, weightLocation, weightSalary, weightRemote, weightJobType)
	return weights
}

func applyWeights(vec, weights []float64) []float64 {
	out := make([]float64, len(vec))
	for i := range vec {
		out[i] = vec[i] * weights[i]
	}
	return out
}
