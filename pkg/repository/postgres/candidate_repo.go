package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobpulse/backend/pkg/candidate"
	"github.com/jobpulse/backend/pkg/matching"
)

// CandidateRepository implements candidate.Repository backed by PostgreSQL.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) (*CandidateRepository, error) {
	r := &CandidateRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CandidateRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS candidates (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	skills TEXT[] NOT NULL DEFAULT '{}',
	experience_level TEXT NOT NULL DEFAULT 'entry',
	open_to_work BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_candidates_open ON candidates(open_to_work);
`)
	return err
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, skills, experience_level, open_to_work, created_at
FROM candidates WHERE id = $1
`, id)
	return scanProfile(row)
}

func (r *CandidateRepository) ListOpenExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]candidate.Profile, error) {
	if limit <= 0 {
		limit = 100
	}
	if exclude == nil {
		exclude = []uuid.UUID{}
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, name, skills, experience_level, open_to_work, created_at
FROM candidates
WHERE open_to_work AND NOT (id = ANY($1))
ORDER BY id
LIMIT $2
`, exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []candidate.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func scanProfile(row pgx.Row) (candidate.Profile, error) {
	var p candidate.Profile
	var level string
	var created time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Skills, &level, &p.OpenToWork, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, candidate.ErrNotFound
		}
		return candidate.Profile{}, err
	}
	p.Level = matching.ParseLevel(level)
	p.CreatedAt = created.UTC()
	return p, nil
}
