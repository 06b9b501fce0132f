package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the PostgreSQL-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Save inserts a resume record.
func (p *Postgres) Save(ctx context.Context, resume *Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	now := time.Now()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now

	_, err := p.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, session_id, job_title, company_name,
		                      master_resume, job_posting, tailored_resume, latex_code,
		                      target_length, ats_score, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO UPDATE SET
		     tailored_resume = $8,
		     latex_code = $9,
		     ats_score = $11,
		     status = $12,
		     updated_at = $14`,
		resume.ID, nullIfEmpty(resume.UserID), nullIfEmpty(resume.SessionID),
		nullIfEmpty(resume.JobTitle), nullIfEmpty(resume.CompanyName),
		resume.MasterResume, resume.JobPosting, resume.TailoredResume,
		nullIfEmpty(resume.LatexCode), nullIfEmpty(resume.TargetLength),
		resume.ATSScore, resume.Status, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Get retrieves a resume by ID.
func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (*Resume, error) {
	resume, err := scanResume(p.pool.QueryRow(ctx,
		`SELECT id, user_id, session_id, job_title, company_name,
		        master_resume, job_posting, tailored_resume, latex_code,
		        target_length, ats_score, status, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// ListByUser retrieves a user's resumes, newest first.
func (p *Postgres) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, session_id, job_title, company_name,
		        master_resume, job_posting, tailored_resume, latex_code,
		        target_length, ats_score, status, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	return resumes, rows.Err()
}

// Delete removes a resume by ID.
func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var userID, sessionID, jobTitle, companyName, latexCode, targetLength *string

	err := row.Scan(&r.ID, &userID, &sessionID, &jobTitle, &companyName,
		&r.MasterResume, &r.JobPosting, &r.TailoredResume, &latexCode,
		&targetLength, &r.ATSScore, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	r.UserID = deref(userID)
	r.SessionID = deref(sessionID)
	r.JobTitle = deref(jobTitle)
	r.CompanyName = deref(companyName)
	r.LatexCode = deref(latexCode)
	r.TargetLength = deref(targetLength)
	return &r, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
