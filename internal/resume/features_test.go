package resume

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFeaturesContactAndSections(t *testing.T) {
	text := "John Doe\njohn.doe@example.com | (123) 456-7890\n\nExperience\nEducation\nSkills\n• Python • SQL"
	f := ExtractFeatures(text)

	require.True(t, f.HasEmail)
	require.True(t, f.HasPhone)
	require.True(t, f.HasExperience)
	require.True(t, f.HasEducation)
	require.True(t, f.HasSkills)
	require.Equal(t, 3, f.SectionCount)
}

func TestExtractFeaturesNoContact(t *testing.T) {
	f := ExtractFeatures("just some plain words without anything structured")
	require.False(t, f.HasEmail)
	require.False(t, f.HasPhone)
	require.Equal(t, 0, f.SectionCount)
}

func TestExtractFeaturesBulletsAndKeywords(t *testing.T) {
	text := "• Built services in python and go\n• Deployed with docker on aws\n- Managed postgresql databases"
	f := ExtractFeatures(text)

	// two "•", one "-" from the bullet, no other glyphs
	require.Equal(t, 3, f.BulletPointCount)
	// python, go (also matched inside nothing else here), docker, aws, postgresql, sql (substring)
	require.GreaterOrEqual(t, f.TechKeywordCount, 5)
	// built, deployed, managed
	require.Equal(t, 3, f.ActionVerbCount)
}

func TestExtractFeaturesSentenceStats(t *testing.T) {
	f := ExtractFeatures("One two three. Four five six seven! Eight?")
	require.Equal(t, 3, f.SentenceCount)
	require.InDelta(t, 8.0/3.0, f.AvgSentenceLength, 1e-9)
	require.Greater(t, f.SentenceComplexity, 0.0)
}

func TestExtractFeaturesKeywordIsSubstringMatch(t *testing.T) {
	// "django" also matches "go"; "postgresql" also matches "sql".
	f := ExtractFeatures("worked with django and postgresql")
	require.GreaterOrEqual(t, f.TechKeywordCount, 4)
}
