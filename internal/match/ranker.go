package match

import "sort"

const (
	DefaultRecommendations = 10
	MaxRecommendations     = 50
	skillListCap           = 5
)

// Recommend shortlists 2n geometric neighbors, re-ranks them by required-skill
// overlap and drops every zero-overlap job. Distance only selects the
// shortlist; the final score is the overlap percentage.
func (idx *Index) Recommend(c CandidateProfile, n int) []Recommendation {
	if n <= 0 {
		n = DefaultRecommendations
	}
	if n > MaxRecommendations {
		n = MaxRecommendations
	}

	vec := idx.EncodeCandidate(c)
	shortlist := idx.query(vec, minInt(n*2, len(idx.jobs)))
	candidateSkills := skillSet(c.Skills)

	out := make([]Recommendation, 0, n)
	for _, nb := range shortlist {
		entry := idx.jobs[nb.jobIdx]

		matching := make([]string, 0, len(entry.requiredSkills))
		for _, sk := range entry.requiredSkills {
			if _, ok := candidateSkills[sk]; ok {
				matching = append(matching, sk)
			}
		}

		pct := 0.0
		if len(entry.requiredSkills) > 0 {
			pct = float64(len(matching)) / float64(len(entry.requiredSkills)) * 100
		}
		if pct == 0 {
			continue
		}

		out = append(out, Recommendation{
			JobID:           entry.record.ID,
			Title:           entry.record.Title,
			Company:         entry.record.Company,
			MatchScore:      pct,
			SkillMatchPct:   pct,
			MatchingSkills:  capList(matching, skillListCap),
			RequiredSkills:  capList(entry.requiredSkills, skillListCap),
			ExperienceLevel: entry.record.ExperienceLevel,
			Location:        entry.record.Location,
			Salary:          entry.salary,
			JobType:         entry.record.JobType,
			IsRemote:        entry.isRemote,
			Rank:            len(out) + 1,
			Distance:        nb.distance,
		})
		if len(out) >= n {
			break
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MatchScore > out[b].MatchScore
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func capList(list []string, limit int) []string {
	if len(list) > limit {
		list = list[:limit]
	}
	return append([]string{}, list...)
}
