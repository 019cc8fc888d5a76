// Package recommend selects job recommendations for a candidate and
// candidate recommendations for a job by applying the matching engine over a
// bounded pool.
package recommend

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/jobpulse/backend/pkg/application"
	"github.com/jobpulse/backend/pkg/candidate"
	"github.com/jobpulse/backend/pkg/job"
	"github.com/jobpulse/backend/pkg/matching"
)

const (
	// JobThreshold is the minimum match score for seeker-facing job
	// recommendations.
	JobThreshold = 60
	// CandidateThreshold is the stricter bar for employer-facing candidate
	// recommendations.
	CandidateThreshold = 70

	// DefaultLimit is the result size when the caller does not ask for one.
	DefaultLimit = 10
	// DefaultPoolSize caps how many records one call may scan. Bounding the
	// scan trades exhaustiveness for predictable latency.
	DefaultPoolSize = 100
)

// ScoredJob pairs a posting with its match score for one candidate.
type ScoredJob struct {
	Job   job.Posting `json:"job"`
	Score int         `json:"score"`
}

// ScoredCandidate pairs a profile with its match score for one posting.
type ScoredCandidate struct {
	Candidate candidate.Profile `json:"candidate"`
	Score     int               `json:"score"`
}

// UseCase exposes the two symmetric recommendation operations. A missing
// subject yields an empty result, not an error: absence of recommendations
// is not exceptional.
type UseCase interface {
	JobsForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]ScoredJob, error)
	CandidatesForJob(ctx context.Context, jobID int64, limit int) ([]ScoredCandidate, error)
}

type service struct {
	candidates   candidate.Repository
	jobs         job.Repository
	applications application.Repository
	scorer       *matching.Scorer
	poolSize     int
}

// NewService wires the selector. poolSize <= 0 uses DefaultPoolSize.
func NewService(candidates candidate.Repository, jobs job.Repository, applications application.Repository, scorer *matching.Scorer, poolSize int) UseCase {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &service{
		candidates:   candidates,
		jobs:         jobs,
		applications: applications,
		scorer:       scorer,
		poolSize:     poolSize,
	}
}

// JobsForCandidate scores active postings the candidate has not applied to,
// keeps scores >= JobThreshold and returns the top limit, ordered by score
// descending with newer postings winning ties.
func (s *service) JobsForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]ScoredJob, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	prof, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return []ScoredJob{}, nil
		}
		return nil, err
	}

	applied, err := s.applications.JobIDsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	pool, err := s.jobs.ListActiveExcluding(ctx, applied, s.poolSize)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredJob, 0, len(pool))
	for _, p := range pool {
		res := s.scorer.ComputeMatch(prof.Skills, prof.Level, p.RequiredSkills, p.Level)
		if res.Score >= JobThreshold {
			out = append(out, ScoredJob{Job: p, Score: res.Score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].Job.PostedAt.Equal(out[j].Job.PostedAt) {
			return out[i].Job.PostedAt.After(out[j].Job.PostedAt)
		}
		return out[i].Job.ID > out[j].Job.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CandidatesForJob scores open-to-work profiles that have not applied to the
// posting, keeps scores >= CandidateThreshold and returns the top limit.
// Ties beyond the score break on candidate id ascending, which keeps the
// order deterministic.
func (s *service) CandidatesForJob(ctx context.Context, jobID int64, limit int) ([]ScoredCandidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return []ScoredCandidate{}, nil
		}
		return nil, err
	}

	applied, err := s.applications.CandidateIDsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	pool, err := s.candidates.ListOpenExcluding(ctx, applied, s.poolSize)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredCandidate, 0, len(pool))
	for _, prof := range pool {
		res := s.scorer.ComputeMatch(prof.Skills, prof.Level, posting.RequiredSkills, posting.Level)
		if res.Score >= CandidateThreshold {
			out = append(out, ScoredCandidate{Candidate: prof, Score: res.Score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Candidate.ID.String() < out[j].Candidate.ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
