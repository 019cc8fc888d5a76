package search

import (
	"sort"
	"time"

	"github.com/jobpulse/backend/pkg/job"
)

const (
	popularitySaturation = 100            // applications at which the boost saturates
	popularityWeight     = 2.0            // popularity dominates the two boosts
	freshnessWindow      = 30 * 24 * time.Hour
	freshnessMax         = 0.2 // newest postings get the full bonus
)

// popularityBoost saturates at 1 once a posting has collected
// popularitySaturation applications.
func popularityBoost(applicationCount int64) float64 {
	b := float64(applicationCount) / popularitySaturation
	if b > 1 {
		return 1
	}
	if b < 0 {
		return 0
	}
	return b
}

// freshnessBoost decays linearly from freshnessMax at age zero to 0 at the
// end of the freshness window.
func freshnessBoost(postedAt, now time.Time) float64 {
	age := now.Sub(postedAt)
	if age < 0 {
		age = 0
	}
	if age >= freshnessWindow {
		return 0
	}
	return freshnessMax * (1 - float64(age)/float64(freshnessWindow))
}

// finalScore blends the persistence layer's textual relevance with the
// popularity and freshness boosts.
func finalScore(row job.SearchRow, now time.Time) float64 {
	return row.TextScore + popularityWeight*popularityBoost(row.ApplicationCount) + freshnessBoost(row.PostedAt, now)
}

// rankPage orders one fetched page. Relevance mode ranks by the blended
// score; the other modes sort directly on the named field. Identity
// descending is always the final tie-break, which keeps the order
// deterministic for cursor pagination.
func rankPage(rows []job.SearchRow, sortMode string, now time.Time) []job.Posting {
	ordered := make([]job.SearchRow, len(rows))
	copy(ordered, rows)

	switch sortMode {
	case SortDate:
		sort.SliceStable(ordered, func(i, j int) bool {
			if !ordered[i].PostedAt.Equal(ordered[j].PostedAt) {
				return ordered[i].PostedAt.After(ordered[j].PostedAt)
			}
			return ordered[i].ID > ordered[j].ID
		})
	case SortSalary:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].SalaryMax != ordered[j].SalaryMax {
				return ordered[i].SalaryMax > ordered[j].SalaryMax
			}
			return ordered[i].ID > ordered[j].ID
		})
	case SortPopularity:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].ApplicationCount != ordered[j].ApplicationCount {
				return ordered[i].ApplicationCount > ordered[j].ApplicationCount
			}
			return ordered[i].ID > ordered[j].ID
		})
	default: // relevance
		scores := make(map[int64]float64, len(ordered))
		for _, r := range ordered {
			scores[r.ID] = finalScore(r, now)
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			si, sj := scores[ordered[i].ID], scores[ordered[j].ID]
			if si != sj {
				return si > sj
			}
			return ordered[i].ID > ordered[j].ID
		})
	}

	items := make([]job.Posting, len(ordered))
	for i, r := range ordered {
		items[i] = r.Posting
	}
	return items
}
