package match

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommendSingleJobScenario(t *testing.T) {
	jobs := []JobRecord{{
		ID: "job-1", Title: "Backend Developer", Company: "Acme",
		Location: "Paris", JobType: "full_time", ExperienceLevel: "mid",
		SalaryMin: f(50000), SalaryMax: f(70000),
		RequiredSkills: "python,django",
	}}
	idx, err := Build(jobs)
	require.NoError(t, err)

	candidate := CandidateProfile{
		Skills:          "python,sql",
		ExperienceLevel: "mid",
		DesiredSalary:   60000,
		Location:        "Paris",
	}
	recs := idx.Recommend(candidate, 10)
	require.Len(t, recs, 1)
	require.Equal(t, "job-1", recs[0].JobID)
	require.Equal(t, 50.0, recs[0].SkillMatchPct)
	require.Equal(t, 50.0, recs[0].MatchScore)
	require.Equal(t, 1, recs[0].Rank)
	require.Equal(t, []string{"python"}, recs[0].MatchingSkills)
	require.Equal(t, 60000.0, recs[0].Salary)
}

func TestRecommendDropsZeroOverlap(t *testing.T) {
	idx, err := Build(sampleCatalog())
	require.NoError(t, err)

	// Overlaps only job-3; the geometrically close python jobs must not leak
	// through with 0% skill match.
	recs := idx.Recommend(CandidateProfile{Skills: "react"}, 10)
	require.Len(t, recs, 1)
	require.Equal(t, "job-3", recs[0].JobID)

	// No skills at all: every overlap is zero, list is empty.
	recs = idx.Recommend(CandidateProfile{}, 10)
	require.Empty(t, recs)
}

func TestRecommendNoRequiredSkillsNeverMatches(t *testing.T) {
	jobs := []JobRecord{
		{ID: "job-a", Title: "Generalist", RequiredSkills: "", PreferredSkills: "python"},
		{ID: "job-b", Title: "Pythonista", RequiredSkills: "python"},
	}
	idx, err := Build(jobs)
	require.NoError(t, err)

	recs := idx.Recommend(CandidateProfile{Skills: "python"}, 10)
	require.Len(t, recs, 1)
	require.Equal(t, "job-b", recs[0].JobID)
}

func TestRecommendRankingAndDeterminism(t *testing.T) {
	jobs := []JobRecord{
		{ID: "half", Title: "Half Match", RequiredSkills: "python,go"},
		{ID: "full", Title: "Full Match", RequiredSkills: "python"},
		{ID: "third", Title: "Third Match", RequiredSkills: "python,go,rust"},
	}
	idx, err := Build(jobs)
	require.NoError(t, err)

	candidate := CandidateProfile{Skills: "python"}
	recs := idx.Recommend(candidate, 10)
	require.Len(t, recs, 3)

	// Sorted by match score descending, dense 1-based ranks.
	require.Equal(t, "full", recs[0].JobID)
	require.Equal(t, "half", recs[1].JobID)
	require.Equal(t, "third", recs[2].JobID)
	for i, rec := range recs {
		require.Equal(t, i+1, rec.Rank)
		if i > 0 {
			require.LessOrEqual(t, rec.MatchScore, recs[i-1].MatchScore)
		}
	}

	for i := 0; i < 5; i++ {
		require.Equal(t, recs, idx.Recommend(candidate, 10))
	}
}

func TestRecommendLimitAndCaps(t *testing.T) {
	jobs := make([]JobRecord, 0, 30)
	for i := 0; i < 30; i++ {
		jobs = append(jobs, JobRecord{
			ID:             "job-" + strconv.Itoa(i),
			Title:          "Engineer",
			RequiredSkills: "python,go,rust,java,kotlin,scala,ruby",
		})
	}
	idx, err := Build(jobs)
	require.NoError(t, err)

	recs := idx.Recommend(CandidateProfile{Skills: "python"}, 4)
	require.Len(t, recs, 4)
	for _, rec := range recs {
		require.Len(t, rec.RequiredSkills, 5)
	}

	// n above the hard cap is clamped, not an error.
	recs = idx.Recommend(CandidateProfile{Skills: "python"}, 500)
	require.LessOrEqual(t, len(recs), MaxRecommendations)

	// n <= 0 falls back to the default.
	recs = idx.Recommend(CandidateProfile{Skills: "python"}, 0)
	require.LessOrEqual(t, len(recs), DefaultRecommendations)
}
