package candidate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jobpulse/backend/pkg/matching"
)

// ErrNotFound is returned when the requested candidate does not exist.
var ErrNotFound = errors.New("candidate not found")

// Profile is a job seeker's skill profile. The matching engine only reads
// profiles; they are created at signup and mutated by profile edits elsewhere.
type Profile struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Skills     []string       `json:"skills"`
	Level      matching.Level `json:"experienceLevel"`
	OpenToWork bool           `json:"openToWork"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Repository is the read port over candidate profiles.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	// ListOpenExcluding returns up to limit open-to-work profiles whose id is
	// not in exclude, in id order. One bulk read, no per-profile queries.
	ListOpenExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]Profile, error)
}
