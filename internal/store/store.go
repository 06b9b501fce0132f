// Package store persists tailored resumes.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a resume ID does not exist.
var ErrNotFound = errors.New("resume not found")

// Resume statuses.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Resume is a persisted tailoring result: the inputs, the tailored
// output, and the score.
type Resume struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"userId,omitempty"`
	SessionID      string    `json:"sessionId,omitempty"`
	JobTitle       string    `json:"jobTitle,omitempty"`
	CompanyName    string    `json:"companyName,omitempty"`
	MasterResume   string    `json:"masterResume"`
	JobPosting     string    `json:"jobPosting"`
	TailoredResume string    `json:"tailoredResume"`
	LatexCode      string    `json:"latexCode,omitempty"`
	TargetLength   string    `json:"targetLength,omitempty"`
	ATSScore       float64   `json:"atsScore"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Store is the persistence interface for resumes. Implementations must
// be safe for concurrent use.
type Store interface {
	// Save inserts a resume, assigning ID and timestamps when unset.
	Save(ctx context.Context, resume *Resume) error
	// Get returns a resume by ID, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Resume, error)
	// ListByUser returns a user's resumes, newest first.
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	// Delete removes a resume by ID, or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// Close releases any held resources.
	Close()
}
