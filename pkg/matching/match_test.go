package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/backend/pkg/matching"
)

// The reference scenario: four web skills against a five-skill requirement
// at the same level. Three exact matches of five at full weight.
func TestComputeMatchReferenceScenario(t *testing.T) {
	s := newScorer()
	res := s.ComputeMatch(
		[]string{"JavaScript", "React", "Node.js", "MongoDB"}, matching.LevelMid,
		[]string{"JavaScript", "React", "Node.js", "PostgreSQL", "Docker"}, matching.LevelMid,
	)

	assert.Equal(t, []string{"JavaScript", "React", "Node.js"}, res.MatchedSkills)
	assert.Equal(t, []string{"PostgreSQL", "Docker"}, res.MissingSkills)
	assert.True(t, res.ExperienceMatch)
	assert.Equal(t, 60, res.MatchPercentage)
	assert.GreaterOrEqual(t, res.Score, 55)
	assert.LessOrEqual(t, res.Score, 65)
}

func TestComputeMatchSeniorityPenalty(t *testing.T) {
	s := newScorer()
	res := s.ComputeMatch(
		[]string{"JavaScript", "React", "Node.js", "MongoDB"}, matching.LevelMid,
		[]string{"JavaScript", "React", "Node.js", "MongoDB"}, matching.LevelSenior,
	)
	// perfect skill overlap, one level of distance: 100 * 0.8
	assert.Equal(t, 80, res.Score)
	assert.False(t, res.ExperienceMatch)
	assert.Equal(t, 100, res.MatchPercentage)
}

func TestComputeMatchScoreNonIncreasingWithLevelDistance(t *testing.T) {
	s := newScorer()
	skills := []string{"Go", "PostgreSQL", "Docker"}
	required := []string{"Go", "PostgreSQL", "Kubernetes"}

	same := s.ComputeMatch(skills, matching.LevelMid, required, matching.LevelMid).Score
	one := s.ComputeMatch(skills, matching.LevelMid, required, matching.LevelSenior).Score
	two := s.ComputeMatch(skills, matching.LevelEntry, required, matching.LevelSenior).Score

	assert.GreaterOrEqual(t, same, one)
	assert.GreaterOrEqual(t, one, two)
}

// Matched and missing must partition the required set: together they cover
// every distinct requirement and they never overlap.
func TestComputeMatchGapPartitionsRequiredSet(t *testing.T) {
	s := newScorer()
	required := []string{"Go", "go", "React", "Kafka", ""}
	res := s.ComputeMatch([]string{"Go", "TypeScript"}, matching.LevelEntry, required, matching.LevelEntry)

	require.Len(t, res.MatchedSkills, 1)
	require.Len(t, res.MissingSkills, 2) // "go" duplicate and the empty entry are dropped

	seen := map[string]bool{}
	for _, sk := range res.MatchedSkills {
		seen[sk] = true
	}
	for _, sk := range res.MissingSkills {
		assert.False(t, seen[sk], "skill %q in both matched and missing", sk)
	}
}

// Related-only matches raise the score but are surfaced as missing, i.e.
// upskill opportunities.
func TestComputeMatchRelatedOnlyIsReportedMissing(t *testing.T) {
	s := newScorer()
	res := s.ComputeMatch([]string{"TypeScript"}, matching.LevelEntry, []string{"JavaScript"}, matching.LevelEntry)

	assert.Equal(t, 50, res.Score)
	assert.Empty(t, res.MatchedSkills)
	assert.Equal(t, []string{"JavaScript"}, res.MissingSkills)
	assert.Equal(t, 0, res.MatchPercentage)
}

func TestComputeMatchNoRequiredSkills(t *testing.T) {
	s := newScorer()
	res := s.ComputeMatch([]string{"Go"}, matching.LevelEntry, nil, matching.LevelSenior)

	// neutral skill score with the full distance penalty applied
	assert.Equal(t, 25, res.Score)
	assert.Equal(t, 0, res.MatchPercentage)
	assert.Empty(t, res.MatchedSkills)
	assert.Empty(t, res.MissingSkills)
}
