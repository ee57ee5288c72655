package resume

import (
	"math"
	"regexp"
	"strings"
)

// Features is an ephemeral, per-analysis view of a resume text. Every field
// is a pure function of the input; nothing is persisted.
type Features struct {
	WordCount          int
	CharCount          int
	HasEmail           bool
	HasPhone           bool
	HasSummary         bool
	HasExperience      bool
	HasEducation       bool
	HasSkills          bool
	HasProjects        bool
	HasCertifications  bool
	SectionCount       int
	BulletPointCount   int
	TechKeywordCount   int
	ActionVerbCount    int
	SentenceCount      int
	AvgSentenceLength  float64
	SentenceComplexity float64
	LineCount          int
	AvgLineLength      float64
}

var (
	emailPattern    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

var sectionKeywords = map[string][]string{
	"summary":        {"summary", "objective", "profile", "professional summary"},
	"experience":     {"experience", "work", "employment", "professional experience"},
	"education":      {"education", "academic", "degree", "qualifications"},
	"skills":         {"skills", "technical skills", "competencies", "expertise"},
	"projects":       {"projects", "portfolio", "personal projects"},
	"certifications": {"certifications", "certificates", "licenses"},
}

// techKeywords is the fixed skill dictionary used for keyword counting,
// grouped by category.
var techKeywords = [][]string{
	{"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift", "kotlin", "typescript", "go", "rust"},
	{"html", "css", "react", "angular", "vue", "django", "flask", "node.js", "express", "spring", "laravel"},
	{"machine learning", "data analysis", "statistics", "pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "spark", "hadoop"},
	{"sql", "mysql", "postgresql", "mongodb", "redis", "oracle", "sqlite", "cassandra"},
	{"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "ci/cd", "terraform", "ansible", "linux"},
	{"git", "jira", "confluence", "slack", "trello", "postman", "vscode", "intellij", "eclipse"},
	{"leadership", "communication", "teamwork", "problem solving", "project management", "agile", "scrum"},
}

var actionVerbs = []string{
	"achieved", "managed", "developed", "created", "implemented",
	"improved", "increased", "reduced", "led", "coordinated",
	"designed", "built", "established", "launched", "optimized",
	"analyzed", "resolved", "transformed", "generated", "delivered",
	"spearheaded", "initiated", "oversaw", "directed", "facilitated",
	"produced", "engineered", "programmed", "coded", "tested",
	"debugged", "deployed", "maintained", "upgraded", "migrated",
}

var bulletGlyphs = []string{"•", "*", "-", "·", "▪", "→", "○"}

func ExtractFeatures(text string) Features {
	lower := strings.ToLower(text)
	words := strings.Fields(text)

	features := Features{
		WordCount: len(words),
		CharCount: len(text),
		HasEmail:  emailPattern.MatchString(text),
		HasPhone:  phonePattern.MatchString(text),
	}

	features.HasSummary = hasAnyKeyword(lower, sectionKeywords["summary"])
	features.HasExperience = hasAnyKeyword(lower, sectionKeywords["experience"])
	features.HasEducation = hasAnyKeyword(lower, sectionKeywords["education"])
	features.HasSkills = hasAnyKeyword(lower, sectionKeywords["skills"])
	features.HasProjects = hasAnyKeyword(lower, sectionKeywords["projects"])
	features.HasCertifications = hasAnyKeyword(lower, sectionKeywords["certifications"])

	for _, present := range []bool{features.HasExperience, features.HasEducation, features.HasSkills} {
		if present {
			features.SectionCount++
		}
	}

	for _, glyph := range bulletGlyphs {
		features.BulletPointCount += strings.Count(text, glyph)
	}

	for _, category := range techKeywords {
		for _, kw := range category {
			if strings.Contains(lower, kw) {
				features.TechKeywordCount++
			}
		}
	}

	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			features.ActionVerbCount++
		}
	}

	sentences := splitSentences(text)
	features.SentenceCount = len(sentences)
	if len(sentences) > 0 {
		lengths := make([]float64, 0, len(sentences))
		for _, s := range sentences {
			lengths = append(lengths, float64(len(strings.Fields(s))))
		}
		features.AvgSentenceLength = mean(lengths)
		features.SentenceComplexity = stddev(lengths)
	} else {
		features.AvgSentenceLength = float64(len(words))
	}

	lines := strings.Split(text, "\n")
	features.LineCount = len(lines)
	if len(lines) > 0 {
		lengths := make([]float64, 0, len(lines))
		for _, line := range lines {
			lengths = append(lengths, float64(len(line)))
		}
		features.AvgLineLength = mean(lengths)
	}

	return features
}

func hasAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func splitSentences(text string) []string {
	parts := sentencePattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
