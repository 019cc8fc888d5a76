package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobpulse/backend/pkg/application"
)

// ApplicationRepository implements application.Repository backed by PostgreSQL.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id BIGSERIAL PRIMARY KEY,
	job_id BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	candidate_id UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications(candidate_id);
`)
	return err
}

// Create inserts the application and bumps the posting's application counter
// in one transaction, so the popularity signal always counts real rows.
func (r *ApplicationRepository) Create(ctx context.Context, candidateID uuid.UUID, jobID int64) (application.Application, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	a := application.Application{JobID: jobID, CandidateID: candidateID}
	err = tx.QueryRow(ctx, `
INSERT INTO applications (job_id, candidate_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (job_id, candidate_id) DO NOTHING
RETURNING id, created_at
`, jobID, candidateID, time.Now().UTC()).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrAlreadyApplied
		}
		return application.Application{}, err
	}

	_, err = tx.Exec(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, jobID)
	if err != nil {
		return application.Application{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (r *ApplicationRepository) JobIDsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT job_id FROM applications WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ApplicationRepository) CandidateIDsByJob(ctx context.Context, jobID int64) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT candidate_id FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
