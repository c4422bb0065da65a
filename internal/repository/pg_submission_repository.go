package repository

import (
	"context"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository defines the persistence interface for contact submissions.
type SubmissionRepository interface {
	Insert(ctx context.Context, sub *model.Submission) error
	ListAll(ctx context.Context) ([]*model.Submission, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Insert adds a contact_submissions row and populates ID, status and
// timestamps from the RETURNING clause.
func (r *PgSubmissionRepository) Insert(ctx context.Context, sub *model.Submission) error {
	var status string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, phone, email, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at, updated_at`,
		sub.Name, sub.Phone, sub.Email, sub.Message,
	).Scan(&sub.ID, &status, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return err
	}
	sub.Status, err = model.ParseStatus(status)
	return err
}

// ListAll returns every submission, newest first.
func (r *PgSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone, email, message, status, created_at, updated_at
		 FROM contact_submissions
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Submission
	for rows.Next() {
		var s model.Submission
		var status string
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Message, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if s.Status, err = model.ParseStatus(status); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// UpdateStatus sets the status of one submission and refreshes updated_at.
// The UPDATE runs even when the status is unchanged.
func (r *PgSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
