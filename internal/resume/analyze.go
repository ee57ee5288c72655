package resume

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	modelVersion = "2.0"
	// MinTextLength is the minimum trimmed length accepted for analysis.
	MinTextLength = 50
)

type Statistics struct {
	WordCount    int  `json:"word_count"`
	SectionCount int  `json:"section_count"`
	BulletPoints int  `json:"bullet_points"`
	TechKeywords int  `json:"tech_keywords"`
	ActionVerbs  int  `json:"action_verbs"`
	HasEmail     bool `json:"has_email"`
	HasPhone     bool `json:"has_phone"`
}

type DetailedAnalysis struct {
	Strengths       []string   `json:"strengths"`
	Weaknesses      []string   `json:"weaknesses"`
	ATSIssues       []string   `json:"ats_issues"`
	MissingSections []string   `json:"missing_sections"`
	Statistics      Statistics `json:"statistics"`
}

type Suggestion struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type Summary struct {
	QualityScore     float64 `json:"quality_score"`
	Grade            string  `json:"grade"`
	GradeColor       string  `json:"grade_color"`
	ATSCompatible    bool    `json:"ats_compatible"`
	ATSConfidence    float64 `json:"ats_confidence"`
	OverallFeedback  string  `json:"overall_feedback"`
	ScoreExplanation string  `json:"score_explanation"`
}

type Analysis struct {
	Summary                Summary          `json:"summary"`
	DetailedAnalysis       DetailedAnalysis `json:"detailed_analysis"`
	ImprovementSuggestions []Suggestion     `json:"improvement_suggestions"`
	QuickWins              []string         `json:"quick_wins"`
	RecommendedActions     []string         `json:"recommended_actions"`
}

type Metadata struct {
	AnalysisTimestamp string `json:"analysis_timestamp"`
	ModelVersion      string `json:"model_version"`
}

// Report is the full analysis result. Success is false when the input was
// rejected before analysis, with Error explaining why.
type Report struct {
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Analyze runs the full scoring pipeline over raw resume text.
func Analyze(text string) Report {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return Report{
			Success: false,
			Error:   fmt.Sprintf("Resume text is too short (minimum %d characters)", MinTextLength),
		}
	}

	features := ExtractFeatures(text)
	score := ScoreResume(features)
	atsCompatible, atsConfidence := CheckATSCompatibility(text)
	grade, feedback, color := GradeForScore(score)
	detailed := buildDetailedAnalysis(text, features)
	suggestions := buildSuggestions(detailed, score)

	return Report{
		Success: true,
		Analysis: &Analysis{
			Summary: Summary{
				QualityScore:     score,
				Grade:            grade,
				GradeColor:       color,
				ATSCompatible:    atsCompatible,
				ATSConfidence:    math.Round(atsConfidence*100) / 100,
				OverallFeedback:  feedback,
				ScoreExplanation: scoreExplanation(score),
			},
			DetailedAnalysis:       detailed,
			ImprovementSuggestions: suggestions,
			QuickWins:              quickWins(text),
			RecommendedActions:     recommendedActions(score, atsCompatible),
		},
		Metadata: &Metadata{
			AnalysisTimestamp: time.Now().Format(time.RFC3339),
			ModelVersion:      modelVersion,
		},
	}
}

func buildDetailedAnalysis(text string, features Features) DetailedAnalysis {
	lower := strings.ToLower(text)
	analysis := DetailedAnalysis{
		Strengths:       []string{},
		Weaknesses:      []string{},
		ATSIssues:       []string{},
		MissingSections: []string{},
	}

	switch {
	case features.HasEmail && features.HasPhone:
		analysis.Strengths = append(analysis.Strengths, "Complete contact information")
	case features.HasEmail || features.HasPhone:
		analysis.Strengths = append(analysis.Strengths, "Has some contact information")
	}
	switch {
	case features.SectionCount >= 3:
		analysis.Strengths = append(analysis.Strengths, "Well-structured with key sections")
	case features.SectionCount == 2:
		analysis.Strengths = append(analysis.Strengths, "Has basic structure")
	}
	if features.BulletPointCount >= 5 {
		analysis.Strengths = append(analysis.Strengths, "Good use of bullet points")
	}
	if features.TechKeywordCount >= 5 {
		analysis.Strengths = append(analysis.Strengths, "Strong technical content")
	}
	if features.ActionVerbCount >= 5 {
		analysis.Strengths = append(analysis.Strengths, "Effective use of action verbs")
	}

	if !features.HasEmail && !features.HasPhone {
		analysis.Weaknesses = append(analysis.Weaknesses, "Missing contact information")
	}
	if features.SectionCount < 2 {
		analysis.Weaknesses = append(analysis.Weaknesses, "Missing key sections")
	}
	if features.WordCount < 200 {
		analysis.Weaknesses = append(analysis.Weaknesses, "Resume is too short")
	} else if features.WordCount > 800 {
		analysis.Weaknesses = append(analysis.Weaknesses, "Resume is too long")
	}
	if features.BulletPointCount < 3 {
		analysis.Weaknesses = append(analysis.Weaknesses, "Needs more bullet points")
	}
	if features.TechKeywordCount < 3 {
		analysis.Weaknesses = append(analysis.Weaknesses, "Lacks technical keywords")
	}

	for _, section := range []string{"experience", "education", "skills"} {
		if !strings.Contains(lower, section) {
			analysis.MissingSections = append(analysis.MissingSections, titleWord(section))
		}
	}

	for _, pattern := range atsUnfriendly {
		if pattern.MatchString(text) {
			analysis.ATSIssues = append(analysis.ATSIssues, "Contains non-standard formatting")
			break
		}
	}
	if strings.Count(text, "|") > 10 {
		analysis.ATSIssues = append(analysis.ATSIssues, "Contains tables (not ATS-friendly)")
	}

	analysis.Statistics = Statistics{
		WordCount:    features.WordCount,
		SectionCount: features.SectionCount,
		BulletPoints: features.BulletPointCount,
		TechKeywords: features.TechKeywordCount,
		ActionVerbs:  features.ActionVerbCount,
		HasEmail:     features.HasEmail,
		HasPhone:     features.HasPhone,
	}
	return analysis
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildSuggestions(analysis DetailedAnalysis, score float64) []Suggestion {
	suggestions := []Suggestion{}

	if score < 3.0 {
		suggestions = append(suggestions,
			Suggestion{
				Priority:    "high",
				Title:       "Add Contact Information",
				Description: "Include your email and phone number",
				Action:      "Add: Your Name | Email: name@email.com | Phone: (123) 456-7890",
			},
			Suggestion{
				Priority:    "high",
				Title:       "Add Key Sections",
				Description: "Include Experience, Education, and Skills sections",
				Action:      "Create clear headings: EXPERIENCE, EDUCATION, SKILLS",
			})
	}

	if len(analysis.MissingSections) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "medium",
			Title:       "Complete Missing Sections",
			Description: "Add: " + strings.Join(analysis.MissingSections, ", "),
			Action:      fmt.Sprintf("Create a %s section with relevant content", analysis.MissingSections[0]),
		})
	}
	if analysis.Statistics.TechKeywords < 5 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "medium",
			Title:       "Add Technical Skills",
			Description: "Include more technical keywords for ATS scanning",
			Action:      "List specific technologies: Python, React, AWS, Docker, etc.",
		})
	}
	if analysis.Statistics.BulletPoints < 5 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "medium",
			Title:       "Use More Bullet Points",
			Description: "Convert paragraphs to bullet points for better readability",
			Action:      "Start each achievement with an action verb: • Developed... • Improved...",
		})
	}
	if analysis.Statistics.ActionVerbs < 5 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "low",
			Title:       "Use Action Verbs",
			Description: "Start bullet points with strong action verbs",
			Action:      "Use: Developed, Managed, Created, Improved, Led, Increased, Reduced",
		})
	}
	if analysis.Statistics.WordCount < 300 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "low",
			Title:       "Expand Content",
			Description: "Add more details to each section",
			Action:      "Aim for 300-500 words total",
		})
	}
	if len(analysis.ATSIssues) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority:    "high",
			Title:       "Fix ATS Compatibility",
			Description: "Remove elements that confuse ATS systems",
			Action:      "Remove tables, graphics, special characters. Use standard fonts.",
		})
	}

	return suggestions
}

func quickWins(text string) []string {
	wins := []string{}
	lower := strings.ToLower(text)

	if !strings.Contains(text, "@") {
		wins = append(wins, "Add your email address")
	}
	if !phoneDigitsPattern.MatchString(text) {
		wins = append(wins, "Add your phone number")
	}
	if !strings.Contains(lower, "linkedin") {
		wins = append(wins, "Add your LinkedIn profile URL")
	}
	if !strings.Contains(lower, "summary") && !strings.Contains(lower, "objective") {
		wins = append(wins, "Add a 2-3 line professional summary")
	}
	if strings.Count(text, "•")+strings.Count(text, "-")+strings.Count(text, "*") < 3 {
		wins = append(wins, "Convert paragraphs to bullet points")
	}
	return wins
}
