package job

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobpulse/backend/pkg/application"
	"github.com/jobpulse/backend/pkg/cache"
	"github.com/jobpulse/backend/pkg/candidate"
	"github.com/jobpulse/backend/pkg/matching"
)

// StatsTTL bounds staleness of the cached per-employer aggregate when no
// explicit invalidation fires.
const StatsTTL = 5 * time.Minute

// UseCase covers posting reads, view/application tracking and the
// single-pair match computation.
type UseCase interface {
	Get(ctx context.Context, id int64) (Posting, error)
	// TrackView bumps the posting's view counter (atomic at the storage
	// layer) and invalidates the employer's cached aggregate.
	TrackView(ctx context.Context, id int64) error
	Apply(ctx context.Context, candidateID uuid.UUID, jobID int64) (application.Application, error)
	Match(ctx context.Context, candidateID uuid.UUID, jobID int64) (matching.MatchResult, error)
	EmployerStats(ctx context.Context, employerID uuid.UUID) (EmployerStats, error)
}

type service struct {
	repo         Repository
	candidates   candidate.Repository
	applications application.Repository
	scorer       *matching.Scorer
	cache        *cache.Cache
}

// NewService wires the posting use case. cache may be nil.
func NewService(repo Repository, candidates candidate.Repository, applications application.Repository, scorer *matching.Scorer, c *cache.Cache) UseCase {
	return &service{
		repo:         repo,
		candidates:   candidates,
		applications: applications,
		scorer:       scorer,
		cache:        c,
	}
}

func employerStatsKey(employerID uuid.UUID) string {
	return "employer:stats:" + employerID.String()
}

func (s *service) Get(ctx context.Context, id int64) (Posting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) TrackView(ctx context.Context, id int64) error {
	employerID, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return err
	}
	// The counter moved, so the dependent aggregate must not wait for TTL.
	s.cache.Invalidate(ctx, employerStatsKey(employerID))
	return nil
}

func (s *service) Apply(ctx context.Context, candidateID uuid.UUID, jobID int64) (application.Application, error) {
	posting, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}
	app, err := s.applications.Create(ctx, candidateID, jobID)
	if err != nil {
		return application.Application{}, err
	}
	s.cache.Invalidate(ctx, employerStatsKey(posting.EmployerID))
	return app, nil
}

func (s *service) Match(ctx context.Context, candidateID uuid.UUID, jobID int64) (matching.MatchResult, error) {
	prof, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return matching.MatchResult{}, err
	}
	posting, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return matching.MatchResult{}, err
	}
	return s.scorer.ComputeMatch(prof.Skills, prof.Level, posting.RequiredSkills, posting.Level), nil
}

func (s *service) EmployerStats(ctx context.Context, employerID uuid.UUID) (EmployerStats, error) {
	key := employerStatsKey(employerID)
	var stats EmployerStats
	if s.cache.GetJSON(ctx, key, &stats) {
		return stats, nil
	}
	stats, err := s.repo.EmployerStats(ctx, employerID)
	if err != nil {
		return EmployerStats{}, err
	}
	s.cache.SetJSON(ctx, key, stats, StatsTTL)
	return stats, nil
}
