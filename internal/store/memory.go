package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used when no database is configured and
// in tests. Records live until the process exits.
type Memory struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]Resume
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{resumes: make(map[uuid.UUID]Resume)}
}

// Save inserts or replaces a resume record.
func (m *Memory) Save(_ context.Context, resume *Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	now := time.Now()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[resume.ID] = *resume
	return nil
}

// Get returns a resume by ID.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (*Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resume, ok := m.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &resume, nil
}

// ListByUser returns a user's resumes, newest first.
func (m *Memory) ListByUser(_ context.Context, userID string) ([]Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var resumes []Resume
	for _, resume := range m.resumes {
		if resume.UserID == userID {
			resumes = append(resumes, resume)
		}
	}
	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})
	return resumes, nil
}

// Delete removes a resume by ID.
func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.resumes[id]; !ok {
		return ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
