package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strongResumeText() string {
	var b strings.Builder
	b.WriteString("John Doe\n")
	b.WriteString("Email: john.doe@example.com | Phone: (123) 456-7890\n\n")
	b.WriteString("Summary\n")
	b.WriteString("Seasoned backend engineer designed around data heavy platforms.\n\n")
	b.WriteString("Experience\n")
	b.WriteString("• Developed scalable services in Python and Django\n")
	b.WriteString("• Managed a PostgreSQL and Redis data layer\n")
	b.WriteString("• Implemented pipelines with Docker and Kubernetes on AWS\n")
	b.WriteString("• Improved query latency and increased throughput\n")
	b.WriteString("• Led the migration to React frontends\n")
	b.WriteString("• Created automated tests in Java with Git hooks on Linux\n\n")
	b.WriteString("Education\nBSc Computer Science\n\n")
	b.WriteString("Skills\nPython, SQL, Docker, Kubernetes\n\n")
	b.WriteString(strings.Repeat("building reliable web services for hiring platforms at scale ", 30))
	return b.String()
}

func TestAnalyzeStrongResume(t *testing.T) {
	text := strongResumeText()

	f := ExtractFeatures(text)
	require.GreaterOrEqual(t, f.WordCount, 300)
	require.LessOrEqual(t, f.WordCount, 500)
	require.GreaterOrEqual(t, f.TechKeywordCount, 10)
	require.GreaterOrEqual(t, f.ActionVerbCount, 8)
	require.Equal(t, 3, f.SectionCount)

	report := Analyze(text)
	require.True(t, report.Success)
	require.NotNil(t, report.Analysis)

	summary := report.Analysis.Summary
	require.InDelta(t, 5.0, summary.QualityScore, 1e-9)
	require.Equal(t, "A+", summary.Grade)
	require.Equal(t, "green", summary.GradeColor)
	require.True(t, summary.ATSCompatible)
	require.InDelta(t, 0.9, summary.ATSConfidence, 1e-9)

	require.Contains(t, report.Analysis.DetailedAnalysis.Strengths, "Complete contact information")
	require.Empty(t, report.Analysis.DetailedAnalysis.MissingSections)
	require.NotEmpty(t, report.Analysis.RecommendedActions)
	require.NotNil(t, report.Metadata)
	require.Equal(t, "2.0", report.Metadata.ModelVersion)
}

func TestAnalyzeTooShort(t *testing.T) {
	report := Analyze("   too short   ")
	require.False(t, report.Success)
	require.Contains(t, report.Error, "too short")
	require.Nil(t, report.Analysis)
}

func TestAnalyzeWeakResume(t *testing.T) {
	text := "a plain block of words with no structure no sections and no contact details whatsoever in it at all"
	report := Analyze(text)
	require.True(t, report.Success)

	summary := report.Analysis.Summary
	require.InDelta(t, 1.0, summary.QualityScore, 1e-9)
	require.Equal(t, "D", summary.Grade)
	require.Contains(t, report.Analysis.DetailedAnalysis.Weaknesses, "Missing contact information")
	require.Contains(t, report.Analysis.DetailedAnalysis.MissingSections, "Experience")
	require.NotEmpty(t, report.Analysis.QuickWins)
}

func TestAnalyzeQuickWins(t *testing.T) {
	wins := quickWins("no contact info here and plain paragraphs only")
	require.Contains(t, wins, "Add your email address")
	require.Contains(t, wins, "Add your phone number")
	require.Contains(t, wins, "Add your LinkedIn profile URL")
	require.Contains(t, wins, "Add a 2-3 line professional summary")
	require.Contains(t, wins, "Convert paragraphs to bullet points")
}
