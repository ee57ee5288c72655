package resume

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreResumeRuleTable(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		want     float64
	}{
		{
			name:     "neutral middle of every band",
			features: Features{WordCount: 150, HasEmail: true, SectionCount: 1, BulletPointCount: 4, TechKeywordCount: 3, ActionVerbCount: 3},
			// 3.0 +0 +0.3 -0.3 +0 +0.1 +0
			want: 3.1,
		},
		{
			name:     "ideal in every band clamps at five",
			features: Features{WordCount: 400, HasEmail: true, HasPhone: true, SectionCount: 3, BulletPointCount: 10, TechKeywordCount: 12, ActionVerbCount: 9},
			want:     5.0,
		},
		{
			name:     "empty resume clamps at one",
			features: Features{WordCount: 10},
			want:     1.0,
		},
		{
			name:     "short with one contact method",
			features: Features{WordCount: 250, HasPhone: true, SectionCount: 2, BulletPointCount: 6, TechKeywordCount: 6, ActionVerbCount: 5},
			// 3.0 +0.4 +0.3 +0.3 +0.5 +0.4 +0.3
			want: 5.0,
		},
		{
			name:     "overlong resume penalized",
			features: Features{WordCount: 900, HasEmail: true, HasPhone: true, SectionCount: 3, BulletPointCount: 20, TechKeywordCount: 1, ActionVerbCount: 1},
			// 3.0 -0.5 +0.6 +0.8 +0.2 -0.5 -0.3
			want: 3.3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, ScoreResume(tc.features), 1e-9)
		})
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score float64
		grade string
		color string
	}{
		{4.8, "A+", "green"},
		{4.2, "A", "green"},
		{3.7, "B+", "blue"},
		{3.0, "B", "orange"},
		{2.6, "C+", "orange"},
		{2.0, "C", "red"},
		{1.2, "D", "red"},
	}
	for _, tc := range tests {
		grade, feedback, color := GradeForScore(tc.score)
		require.Equal(t, tc.grade, grade)
		require.Equal(t, tc.color, color)
		require.NotEmpty(t, feedback)
	}
}
