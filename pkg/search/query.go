package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/jobpulse/backend/pkg/job"
	"github.com/jobpulse/backend/pkg/nlp"
)

// Sort modes for search results.
const (
	SortRelevance  = "relevance"
	SortDate       = "date"
	SortSalary     = "salary"
	SortPopularity = "popularity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Query is the ephemeral search request. It is never persisted here; it only
// derives a cache key and a database filter.
type Query struct {
	Term      string   `json:"term"`
	Location  string   `json:"location"`
	Type      string   `json:"type"`
	Skills    []string `json:"skills"`
	SalaryMin int      `json:"salaryMin"`
	SalaryMax int      `json:"salaryMax"`
	Level     string   `json:"level"`
	Sort      string   `json:"sort"`
	Cursor    int64    `json:"cursor"`
	PageSize  int      `json:"pageSize"`
}

// Normalized returns a copy with defaults applied and free-text fields
// canonicalized, so equivalent queries share one fingerprint.
func (q Query) Normalized() Query {
	q.Term = strings.TrimSpace(q.Term)
	q.Location = nlp.Normalize(q.Location)
	q.Type = nlp.Normalize(q.Type)
	q.Level = nlp.Normalize(q.Level)
	q.Skills = nlp.NormalizeSet(q.Skills)
	sort.Strings(q.Skills)
	switch q.Sort {
	case SortDate, SortSalary, SortPopularity:
	default:
		q.Sort = SortRelevance
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	if q.Cursor < 0 {
		q.Cursor = 0
	}
	return q
}

// Fingerprint is the canonical cache key material: a stable hash over the
// normalized fields in a fixed order, so neither field order nor skill order
// in the incoming request affects the key.
func (q Query) Fingerprint() string {
	n := q.Normalized()
	canonical := fmt.Sprintf("term=%s|loc=%s|type=%s|skills=%s|salmin=%d|salmax=%d|level=%s|sort=%s|cursor=%d|size=%d",
		strings.ToLower(n.Term), n.Location, n.Type, strings.Join(n.Skills, ","),
		n.SalaryMin, n.SalaryMax, n.Level, n.Sort, n.Cursor, n.PageSize)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Filter projects the query onto the database-facing filter.
func (q Query) Filter() job.SearchFilter {
	n := q.Normalized()
	return job.SearchFilter{
		Term:      n.Term,
		Location:  n.Location,
		Type:      n.Type,
		Skills:    n.Skills,
		SalaryMin: n.SalaryMin,
		SalaryMax: n.SalaryMax,
		Level:     n.Level,
	}
}
