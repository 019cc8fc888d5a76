package matching

import (
	"math"
	"strings"

	"github.com/jobpulse/backend/pkg/nlp"
)

// MatchKind classifies how a required skill matched the candidate's set.
// Classification is first-match-wins: exact beats category beats related,
// and a skill is never scored twice.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchRelated
	MatchCategory
	MatchExact
)

// Weight is the contribution of this match tier to the raw score.
func (k MatchKind) Weight() float64 {
	switch k {
	case MatchExact:
		return 2.0
	case MatchCategory:
		return 1.5
	case MatchRelated:
		return 1.0
	default:
		return 0
	}
}

// Counted reports whether this tier counts as "matched" for gap reporting.
// Related-only matches contribute to the score but are surfaced as missing
// skills, i.e. upskill opportunities.
func (k MatchKind) Counted() bool {
	return k == MatchExact || k == MatchCategory
}

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchCategory:
		return "category"
	case MatchRelated:
		return "related"
	default:
		return "none"
	}
}

// Scorer computes a 0..100 skill-overlap score between a candidate's skills
// and a job's required skills. It is pure and safe for concurrent use.
type Scorer struct {
	ontology Ontology
}

// NewScorer builds a Scorer around an immutable ontology. A nil ontology
// disables related-skill matching.
func NewScorer(ontology Ontology) *Scorer {
	return &Scorer{ontology: ontology}
}

// Classify returns the match tier of one normalized required skill against a
// normalized candidate skill set.
func (s *Scorer) Classify(candidateSet map[string]struct{}, required string) MatchKind {
	if _, ok := candidateSet[required]; ok {
		return MatchExact
	}
	for c := range candidateSet {
		if strings.Contains(c, required) || strings.Contains(required, c) {
			return MatchCategory
		}
	}
	for _, rel := range s.ontology.Related(required) {
		if _, ok := candidateSet[rel]; ok {
			return MatchRelated
		}
	}
	return MatchNone
}

// Score normalizes both sets and folds the per-skill classification into a
// weighted sum, scaled against the maximum possible (every required skill an
// exact match).
//
// Edge cases: no required skills returns the neutral 50 (nothing to
// differentiate on); an empty candidate set against a non-empty requirement
// returns 0.
func (s *Scorer) Score(candidateSkills, requiredSkills []string) int {
	required := nlp.NormalizeSet(requiredSkills)
	if len(required) == 0 {
		return 50
	}
	candidate := nlp.NormalizeSet(candidateSkills)
	if len(candidate) == 0 {
		return 0
	}
	candidateSet := make(map[string]struct{}, len(candidate))
	for _, c := range candidate {
		candidateSet[c] = struct{}{}
	}

	var sum float64
	for _, req := range required {
		sum += s.Classify(candidateSet, req).Weight()
	}
	score := sum / (float64(len(required)) * MatchExact.Weight()) * 100
	return clampScore(int(math.Round(score)))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
