package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobpulse/backend/pkg/job"
	"github.com/jobpulse/backend/pkg/matching"
)

// JobRepository implements job.Repository backed by PostgreSQL. Textual
// relevance for search comes from Postgres full-text search over
// title/company/description.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id BIGSERIAL PRIMARY KEY,
	employer_id UUID NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	salary_min INT NOT NULL DEFAULT 0,
	salary_max INT NOT NULL DEFAULT 0,
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	experience_level TEXT NOT NULL DEFAULT 'entry',
	view_count BIGINT NOT NULL DEFAULT 0,
	application_count BIGINT NOT NULL DEFAULT 0,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	posted_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_active_posted ON jobs(active, posted_at DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs(employer_id);
CREATE INDEX IF NOT EXISTS idx_jobs_fts ON jobs
	USING GIN (to_tsvector('english', title || ' ' || company || ' ' || description));
`)
	return err
}

const jobColumns = `id, employer_id, title, company, location, description, type,
	salary_min, salary_max, required_skills, experience_level,
	view_count, application_count, active, posted_at`

func (r *JobRepository) GetByID(ctx context.Context, id int64) (job.Posting, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanPosting(row)
}

func (r *JobRepository) ListActiveExcluding(ctx context.Context, exclude []int64, limit int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 100
	}
	if exclude == nil {
		exclude = []int64{}
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE active AND NOT (id = ANY($1))
ORDER BY posted_at DESC, id DESC
LIMIT $2
`, exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// sqlNormalize wraps a column in the SQL equivalent of nlp.Normalize
// (lowercase, non-alphanumeric runs collapsed to one space, trimmed). Filter
// values arrive already normalized, so both sides of every textual comparison
// share the same canonical form: a stored "Node.js" matches a "node js" filter.
func sqlNormalize(col string) string {
	return `btrim(regexp_replace(lower(` + col + `), '[^[:alnum:]]+', ' ', 'g'))`
}

// Search is one bulk read: filter conditions plus the id-cursor bound,
// ordered by id descending. ts_rank is computed only when a term is present;
// otherwise the text score is zero and relevance degenerates to the boosts.
func (r *JobRepository) Search(ctx context.Context, f job.SearchFilter, cursor int64, pageSize int) ([]job.SearchRow, error) {
	query, args := buildSearchQuery(f, cursor, pageSize)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []job.SearchRow
	for rows.Next() {
		var sr job.SearchRow
		var level string
		var posted time.Time
		if err := rows.Scan(
			&sr.ID, &sr.EmployerID, &sr.Title, &sr.Company, &sr.Location, &sr.Description, &sr.Type,
			&sr.SalaryMin, &sr.SalaryMax, &sr.RequiredSkills, &level,
			&sr.ViewCount, &sr.ApplicationCount, &sr.Active, &posted,
			&sr.TextScore,
		); err != nil {
			return nil, err
		}
		sr.Level = matching.ParseLevel(level)
		sr.PostedAt = posted.UTC()
		res = append(res, sr)
	}
	return res, rows.Err()
}

func buildSearchQuery(f job.SearchFilter, cursor int64, pageSize int) (string, []any) {
	if pageSize <= 0 {
		pageSize = 20
	}

	var sb strings.Builder
	args := []any{f.Term}
	sb.WriteString(`
SELECT ` + jobColumns + `,
	CASE WHEN $1 = '' THEN 0
	     ELSE ts_rank(to_tsvector('english', title || ' ' || company || ' ' || description),
	                  websearch_to_tsquery('english', $1))
	END AS text_score
FROM jobs
WHERE active`)
	if f.Term != "" {
		sb.WriteString(` AND to_tsvector('english', title || ' ' || company || ' ' || description) @@ websearch_to_tsquery('english', $1)`)
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		fmt.Fprintf(&sb, ` AND %s LIKE $%d`, sqlNormalize("location"), len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		fmt.Fprintf(&sb, ` AND %s = $%d`, sqlNormalize("type"), len(args))
	}
	if len(f.Skills) > 0 {
		args = append(args, f.Skills)
		fmt.Fprintf(&sb, ` AND EXISTS (SELECT 1 FROM unnest(required_skills) rs WHERE %s = ANY($%d))`, sqlNormalize("rs"), len(args))
	}
	if f.SalaryMin > 0 {
		args = append(args, f.SalaryMin)
		fmt.Fprintf(&sb, ` AND salary_max >= $%d`, len(args))
	}
	if f.SalaryMax > 0 {
		args = append(args, f.SalaryMax)
		fmt.Fprintf(&sb, ` AND salary_min <= $%d`, len(args))
	}
	if f.Level != "" {
		args = append(args, f.Level)
		fmt.Fprintf(&sb, ` AND experience_level = $%d`, len(args))
	}
	if cursor > 0 {
		args = append(args, cursor)
		fmt.Fprintf(&sb, ` AND id < $%d`, len(args))
	}
	args = append(args, pageSize)
	fmt.Fprintf(&sb, ` ORDER BY id DESC LIMIT $%d`, len(args))
	return sb.String(), args
}

func (r *JobRepository) IncrementViews(ctx context.Context, id int64) (uuid.UUID, error) {
	var employerID uuid.UUID
	err := r.pool.QueryRow(ctx, `
UPDATE jobs SET view_count = view_count + 1 WHERE id = $1 RETURNING employer_id
`, id).Scan(&employerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, job.ErrNotFound
		}
		return uuid.Nil, err
	}
	return employerID, nil
}

func (r *JobRepository) EmployerStats(ctx context.Context, employerID uuid.UUID) (job.EmployerStats, error) {
	stats := job.EmployerStats{EmployerID: employerID}
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FILTER (WHERE active),
	COALESCE(SUM(view_count), 0),
	COALESCE(SUM(application_count), 0)
FROM jobs WHERE employer_id = $1
`, employerID).Scan(&stats.ActiveJobs, &stats.TotalViews, &stats.TotalApplications)
	if err != nil {
		return job.EmployerStats{}, err
	}
	return stats, nil
}

func scanPosting(row pgx.Row) (job.Posting, error) {
	var p job.Posting
	var level string
	var posted time.Time
	if err := row.Scan(
		&p.ID, &p.EmployerID, &p.Title, &p.Company, &p.Location, &p.Description, &p.Type,
		&p.SalaryMin, &p.SalaryMax, &p.RequiredSkills, &level,
		&p.ViewCount, &p.ApplicationCount, &p.Active, &posted,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	p.Level = matching.ParseLevel(level)
	p.PostedAt = posted.UTC()
	return p, nil
}
