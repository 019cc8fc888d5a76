package search

import (
	"context"
	"time"

	"github.com/jobpulse/backend/pkg/cache"
	"github.com/jobpulse/backend/pkg/job"
)

// ResultTTL bounds staleness of memoized search pages.
const ResultTTL = 5 * time.Minute

// Result is one page of search output. NextCursor is zero when the page is
// empty; otherwise it is the identity of the last fetched row, and requesting
// the next page returns entries with identity strictly below it.
type Result struct {
	Items      []job.Posting `json:"items"`
	HasMore    bool          `json:"hasMore"`
	NextCursor int64         `json:"nextCursor,omitempty"`
}

// UseCase is the free-text job search with blended relevance ranking.
type UseCase interface {
	Search(ctx context.Context, q Query) (Result, error)
}

type service struct {
	repo  job.Repository
	cache *cache.Cache
	now   func() time.Time
}

// NewService wires the ranker over the posting repository. cache may be nil;
// every request then computes directly.
func NewService(repo job.Repository, c *cache.Cache) UseCase {
	return &service{repo: repo, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Search(ctx context.Context, q Query) (Result, error) {
	q = q.Normalized()
	key := "search:" + q.Fingerprint()

	var res Result
	if s.cache.GetJSON(ctx, key, &res) {
		return res, nil
	}

	// One bulk read: filter + id < cursor, ordered id descending, so pages
	// partition the id space and following NextCursor yields no duplicates
	// and no gaps. Ranking happens within the fetched page.
	rows, err := s.repo.Search(ctx, q.Filter(), q.Cursor, q.PageSize)
	if err != nil {
		return Result{}, err
	}

	res = Result{
		Items:   rankPage(rows, q.Sort, s.now()),
		HasMore: len(rows) == q.PageSize,
	}
	if len(rows) > 0 {
		res.NextCursor = rows[len(rows)-1].ID
	}

	s.cache.SetJSON(ctx, key, res, ResultTTL)
	return res, nil
}
