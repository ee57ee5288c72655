package resume

import (
	"regexp"
	"strings"
	"unicode"
)

// atsUnfriendly lists formatting patterns that trip up applicant tracking
// systems. Only the first four participate in the compatibility verdict; the
// full list feeds the detailed analysis.
var atsUnfriendly = []*regexp.Regexp{
	regexp.MustCompile(`\[.*?\]`),
	regexp.MustCompile(`\{.*?\}`),
	regexp.MustCompile(`<.*?>`),
	regexp.MustCompile(`■|●|◆|◼|★|☆|♣|♥|♦|♠`),
	regexp.MustCompile(`\t{2,}`),
	regexp.MustCompile(` {4,}`),
	regexp.MustCompile(`column|row|table`),
	regexp.MustCompile(`\b[A-Z]{3,}\b`),
}

var phoneDigitsPattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)

// CheckATSCompatibility reports whether the text is likely to survive an
// automated screening pass, with a fixed confidence per verdict tier.
func CheckATSCompatibility(text string) (bool, float64) {
	lower := strings.ToLower(text)

	issues := 0
	for _, pattern := range atsUnfriendly[:4] {
		if pattern.MatchString(text) {
			issues++
		}
	}
	if strings.Count(text, "|") > 10 {
		issues++
	}

	hasName := false
	words := strings.Fields(text)
	for i, word := range words {
		if i >= 10 {
			break
		}
		if isTitleCase(word) {
			hasName = true
			break
		}
	}

	hasSections := false
	for _, section := range []string{"experience", "education", "skills"} {
		if strings.Contains(lower, section) {
			hasSections = true
			break
		}
	}

	switch {
	case issues == 0 && hasName && hasSections:
		return true, 0.9
	case issues <= 2 && hasName:
		return true, 0.7
	case issues <= 3:
		return false, 0.6
	default:
		return false, 0.4
	}
}

// isTitleCase matches tokens like "John", "John," or the initial "J.": an
// uppercase letter followed only by lowercase letters, ignoring surrounding
// punctuation.
func isTitleCase(word string) bool {
	runes := []rune(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// GradeForScore maps a quality score onto a letter grade, a feedback line
// and a display color.
func GradeForScore(score float64) (grade, feedback, color string) {
	switch {
	case score >= 4.5:
		return "A+", "Excellent! Your resume is professional and ATS-friendly.", "green"
	case score >= 4.0:
		return "A", "Very good! Your resume is strong and well-structured.", "green"
	case score >= 3.5:
		return "B+", "Good resume. Some improvements can make it excellent.", "blue"
	case score >= 3.0:
		return "B", "Average resume. Several areas need improvement.", "orange"
	case score >= 2.5:
		return "C+", "Below average. Needs significant improvements.", "orange"
	case score >= 2.0:
		return "C", "Poor resume. Consider major revisions.", "red"
	default:
		return "D", "Very poor. Start over with a professional template.", "red"
	}
}

func scoreExplanation(score float64) string {
	switch {
	case score >= 4.0:
		return "Excellent resume! Likely to pass through ATS systems and impress recruiters."
	case score >= 3.0:
		return "Good resume. May need minor optimizations for better ATS compatibility."
	case score >= 2.0:
		return "Needs improvement. Significant changes recommended for ATS compatibility."
	default:
		return "Poor ATS compatibility. Consider complete rewrite using a professional template."
	}
}

func recommendedActions(score float64, atsCompatible bool) []string {
	var actions []string

	if score < 3.0 {
		actions = append(actions,
			"High priority: fix contact information and add missing sections",
			"Use a professional resume template",
			"Review each section for completeness")
	}
	if !atsCompatible {
		actions = append(actions,
			"Urgent: remove tables, graphics, and special characters",
			"Use standard section headings (Experience, Education, Skills)",
			"Include keywords from your target job description")
	}
	if score >= 3.0 && score < 4.0 {
		actions = append(actions,
			"Optimize: add metrics to achievements (e.g. 'Increased sales by 20%')",
			"Include more technical keywords",
			"Add a projects section if applicable")
	}
	if score >= 4.0 {
		actions = append(actions,
			"Your resume is ATS-ready",
			"Consider tailoring for specific job applications",
			"Add links to LinkedIn, GitHub, or portfolio")
	}

	actions = append(actions,
		"Proofread for spelling and grammar errors",
		"Save as PDF with 'YourName_Resume.pdf' filename")
	return actions
}
