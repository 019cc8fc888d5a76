package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyApplied is returned on a duplicate (candidate, job) application.
var ErrAlreadyApplied = errors.New("already applied to this job")

// Application links a candidate to a posting they applied to.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	CandidateID uuid.UUID `json:"candidateId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository is the persistence port for applications. Create must bump the
// posting's application counter in the same transaction so the popularity
// signal never drifts from the rows it counts.
type Repository interface {
	Create(ctx context.Context, candidateID uuid.UUID, jobID int64) (Application, error)
	JobIDsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]int64, error)
	CandidateIDsByJob(ctx context.Context, jobID int64) ([]uuid.UUID, error)
}
