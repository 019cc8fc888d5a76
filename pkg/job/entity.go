package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jobpulse/backend/pkg/matching"
)

var (
	// ErrNotFound is returned when the requested posting does not exist.
	ErrNotFound = errors.New("job not found")
)

// Posting is a published job. View and application counters are bumped only
// by atomic storage-level increments, never read-modify-write in Go.
type Posting struct {
	ID               int64          `json:"id"`
	EmployerID       uuid.UUID      `json:"employerId"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	Location         string         `json:"location"`
	Description      string         `json:"description"`
	Type             string         `json:"type"`
	SalaryMin        int            `json:"salaryMin"`
	SalaryMax        int            `json:"salaryMax"`
	RequiredSkills   []string       `json:"requiredSkills"`
	Level            matching.Level `json:"experienceLevel"`
	ViewCount        int64          `json:"viewCount"`
	ApplicationCount int64          `json:"applicationCount"`
	Active           bool           `json:"active"`
	PostedAt         time.Time      `json:"postedAt"`
}

// EmployerStats is the per-employer aggregate consumed by dashboards. It is
// cached with a short TTL and explicitly invalidated on counter writes.
type EmployerStats struct {
	EmployerID        uuid.UUID `json:"employerId"`
	ActiveJobs        int64     `json:"activeJobs"`
	TotalViews        int64     `json:"totalViews"`
	TotalApplications int64     `json:"totalApplications"`
}

// SearchRow is one posting returned by the search read, annotated with the
// persistence layer's textual-relevance signal (zero when the query has no
// free-text term). The signal is opaque to the ranker.
type SearchRow struct {
	Posting
	TextScore float64
}

// SearchFilter is the database-facing slice of a search query.
type SearchFilter struct {
	Term      string
	Location  string
	Type      string
	Skills    []string
	SalaryMin int
	SalaryMax int
	Level     string // empty means no level filter
}

// Repository is the persistence port for postings.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Posting, error)
	// ListActiveExcluding returns up to limit active postings whose id is not
	// in exclude, newest first. One bulk read.
	ListActiveExcluding(ctx context.Context, exclude []int64, limit int) ([]Posting, error)
	// Search returns up to pageSize active postings matching the filter with
	// id strictly below cursor (cursor <= 0 means no bound), ordered by id
	// descending so pages partition the id space.
	Search(ctx context.Context, f SearchFilter, cursor int64, pageSize int) ([]SearchRow, error)
	// IncrementViews atomically bumps the view counter and reports the
	// posting's employer so dependent cache entries can be invalidated.
	IncrementViews(ctx context.Context, id int64) (employerID uuid.UUID, err error)
	EmployerStats(ctx context.Context, employerID uuid.UUID) (EmployerStats, error)
}
