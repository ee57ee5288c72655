package resume

import "math"

// ScoreResume turns the extracted features into a 1.0-5.0 quality score
// using a fixed additive rule table.
func ScoreResume(features Features) float64 {
	score := 3.0

	switch {
	case features.WordCount >= 300 && features.WordCount <= 500:
		score += 0.8
	case features.WordCount >= 200 && features.WordCount < 300:
		score += 0.4
	case features.WordCount > 500 && features.WordCount <= 700:
		score += 0.3
	case features.WordCount < 100:
		score -= 1.5
	case features.WordCount > 800:
		score -= 0.5
	}

	switch {
	case features.HasEmail && features.HasPhone:
		score += 0.6
	case features.HasEmail || features.HasPhone:
		score += 0.3
	default:
		score -= 1.0
	}

	switch {
	case features.SectionCount >= 3:
		score += 0.8
	case features.SectionCount == 2:
		score += 0.3
	case features.SectionCount == 1:
		score -= 0.3
	default:
		score -= 1.0
	}

	switch {
	case features.BulletPointCount >= 5 && features.BulletPointCount <= 15:
		score += 0.5
	case features.BulletPointCount > 15:
		score += 0.2
	case features.BulletPointCount < 3:
		score -= 0.4
	}

	switch {
	case features.TechKeywordCount >= 10:
		score += 0.7
	case features.TechKeywordCount >= 5:
		score += 0.4
	case features.TechKeywordCount >= 2:
		score += 0.1
	default:
		score -= 0.5
	}

	switch {
	case features.ActionVerbCount >= 8:
		score += 0.6
	case features.ActionVerbCount >= 4:
		score += 0.3
	case features.ActionVerbCount < 2:
		score -= 0.3
	}

	score = math.Max(1.0, math.Min(5.0, score))
	return math.Round(score*100) / 100
}
