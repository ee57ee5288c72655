package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckATSCompatibilityTiers(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		compatible bool
		confidence float64
	}{
		{
			name:       "clean resume with name and sections",
			text:       "John Doe\nemail@example.com\nExperience at Acme. Education and skills listed plainly.",
			compatible: true,
			confidence: 0.9,
		},
		{
			name:       "some markup but has a name",
			text:       "Jane Smith {template} [placeholder] experience education skills",
			compatible: true,
			confidence: 0.7,
		},
		{
			name:       "markup heavy and anonymous",
			text:       "{a} [b] <c> resume body without cased tokens up front, experience later",
			compatible: false,
			confidence: 0.6,
		},
		{
			name:       "table soup",
			text:       "{a} [b] <c> ● " + strings.Repeat("cell | ", 12),
			compatible: false,
			confidence: 0.4,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, conf := CheckATSCompatibility(tc.text)
			require.Equal(t, tc.compatible, ok)
			require.InDelta(t, tc.confidence, conf, 1e-9)
		})
	}
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"John", true},
		{"John,", true},
		{"JOHN", false},
		{"john", false},
		{"J", true},
		{"J.", true},
		{"123", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, isTitleCase(tc.word), tc.word)
	}
}
