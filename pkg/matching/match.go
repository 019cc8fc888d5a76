package matching

import (
	"math"
	"strings"

	"github.com/jobpulse/backend/pkg/nlp"
)

// MatchResult is the derived, ephemeral outcome of matching one candidate
// against one job. It is never persisted.
//
// Invariants: Score and MatchPercentage are clamped into [0,100];
// MatchedSkills and MissingSkills partition the required skill set with no
// overlap.
type MatchResult struct {
	Score           int      `json:"score"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	MatchPercentage int      `json:"matchPercentage"`
	ExperienceMatch bool     `json:"experienceMatch"`
}

// ComputeMatch composes the skill score with the experience multiplier and
// produces the skill-gap detail. Related-only matches contribute to the
// score but are reported as missing.
func (s *Scorer) ComputeMatch(candidateSkills []string, candidateLevel Level, requiredSkills []string, jobLevel Level) MatchResult {
	skillScore := s.Score(candidateSkills, requiredSkills)
	final := clampScore(int(math.Round(float64(skillScore) * Multiplier(candidateLevel, jobLevel))))

	res := MatchResult{
		Score:           final,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		ExperienceMatch: candidateLevel == jobLevel,
	}

	candidateSet := make(map[string]struct{})
	for _, c := range nlp.NormalizeSet(candidateSkills) {
		candidateSet[c] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, raw := range requiredSkills {
		norm := nlp.Normalize(raw)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		if s.Classify(candidateSet, norm).Counted() {
			res.MatchedSkills = append(res.MatchedSkills, strings.TrimSpace(raw))
		} else {
			res.MissingSkills = append(res.MissingSkills, strings.TrimSpace(raw))
		}
	}
	if required := len(seen); required > 0 {
		res.MatchPercentage = clampScore(int(math.Round(float64(len(res.MatchedSkills)) / float64(required) * 100)))
	}
	return res
}
