package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

func f(v float64) *float64 { return &v }

func sampleCatalog() []JobRecord {
	return []JobRecord{
		{
			ID: "job-1", Title: "Backend Developer", Company: "Acme",
			Location: "Paris", JobType: "full_time", ExperienceLevel: "mid",
			SalaryMin: f(50000), SalaryMax: f(70000),
			RequiredSkills: "python,django", PreferredSkills: "docker",
		},
		{
			ID: "job-2", Title: "Data Engineer", Company: "Globex",
			Location: "Berlin", JobType: "contract", ExperienceLevel: "senior",
			SalaryMin: f(80000), SalaryMax: f(100000),
			RequiredSkills: "python,spark,sql", PreferredSkills: "",
		},
		{
			ID: "job-3", Title: "Remote Frontend Developer", Company: "Initech",
			Location: "Paris", JobType: "full_time", ExperienceLevel: "junior",
			RequiredSkills: "javascript,react", PreferredSkills: "css",
		},
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, appErr.ErrEmptyCatalog)
}

func TestBuildVocabularyIsSortedUnion(t *testing.T) {
	idx, err := Build(sampleCatalog())
	require.NoError(t, err)
	require.Equal(t, []string{"css", "django", "docker", "javascript", "python", "react", "spark", "sql"}, idx.Vocabulary())
	require.Equal(t, len(idx.Vocabulary())+tailFeatureCount, idx.Dimension())
	require.Equal(t, 3, idx.JobCount())
}

func TestMatcherNotBuilt(t *testing.T) {
	m := NewMatcher()
	require.False(t, m.Ready())
	_, err := m.Recommend(CandidateProfile{Skills: "python"}, 5)
	require.ErrorIs(t, err, appErr.ErrIndexNotBuilt)
}

func TestMatcherSwapReplacesWholesale(t *testing.T) {
	m := NewMatcher()
	first, err := m.Build(sampleCatalog()[:1])
	require.NoError(t, err)

	snap, err := m.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 1, snap.JobCount())

	second, err := m.Build(sampleCatalog())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	snap, err = m.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 3, snap.JobCount())
	// The earlier snapshot is still intact for in-flight readers.
	require.Equal(t, 1, first.JobCount())
}

func TestUnknownSkillAndLocationDegrade(t *testing.T) {
	idx, err := Build(sampleCatalog())
	require.NoError(t, err)

	known := idx.EncodeCandidate(CandidateProfile{Skills: "python", Location: "Paris"})
	unknown := idx.EncodeCandidate(CandidateProfile{Skills: "python,cobol", Location: "Atlantis"})

	require.Len(t, unknown, idx.Dimension())
	// cobol is outside the frozen vocabulary: skill dims must be identical.
	nSkills := len(idx.Vocabulary())
	require.Equal(t, known[:nSkills], unknown[:nSkills])
	// Unseen location falls back to ordinal 0, never errors.
	require.Equal(t, 0.0, unknown[nSkills+1])
}

func TestRestoreRoundTrip(t *testing.T) {
	jobs := sampleCatalog()
	idx, err := Build(jobs)
	require.NoError(t, err)

	vectors := make(map[string][]float64)
	for _, snap := range idx.Vectors() {
		vectors[snap.JobID] = snap.Vector
	}

	restored, err := Restore(idx.Meta(), jobs, vectors)
	require.NoError(t, err)

	candidate := CandidateProfile{Skills: "python,sql", ExperienceLevel: "mid", Location: "Paris"}
	require.Equal(t, idx.Recommend(candidate, 10), restored.Recommend(candidate, 10))
}

func TestRestoreMissingVectorFails(t *testing.T) {
	jobs := sampleCatalog()
	idx, err := Build(jobs)
	require.NoError(t, err)

	vectors := make(map[string][]float64)
	for _, snap := range idx.Vectors()[:1] {
		vectors[snap.JobID] = snap.Vector
	}
	_, err = Restore(idx.Meta(), jobs, vectors)
	require.Error(t, err)
}
