package matching

import "github.com/jobpulse/backend/pkg/nlp"

// Level is the ordered seniority enum: entry < mid < senior.
type Level string

const (
	LevelEntry  Level = "entry"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// ParseLevel maps free-form input onto the enum. Unknown or missing values
// normalize to entry rather than failing: matching must degrade gracefully,
// never block on a malformed filter.
func ParseLevel(s string) Level {
	switch nlp.Normalize(s) {
	case "mid", "middle", "intermediate":
		return LevelMid
	case "senior", "lead":
		return LevelSenior
	default:
		return LevelEntry
	}
}

func (l Level) index() int {
	switch l {
	case LevelMid:
		return 1
	case LevelSenior:
		return 2
	default:
		return 0
	}
}

// Multiplier returns the experience-distance penalty applied to the skill
// score. It depends only on the absolute distance between the two levels, so
// over- and under-qualification are penalized identically. That symmetry
// mirrors the product behavior and is kept deliberately.
func Multiplier(candidate, job Level) float64 {
	diff := candidate.index() - job.index()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.8
	default:
		return 0.5
	}
}
