package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDownloadTTL is how long a produced artifact stays downloadable.
const DefaultDownloadTTL = 30 * time.Minute

// DownloadStore spools produced artifacts to a private temp directory so
// they can be re-downloaded by ID. Every entry is deleted on expiry and
// the whole directory is removed on Close; nothing outlives the process.
type DownloadStore struct {
	mu      sync.Mutex
	dir     string
	entries map[uuid.UUID]downloadEntry
	ttl     time.Duration
	now     func() time.Time
}

type downloadEntry struct {
	format    Format
	filename  string
	path      string
	createdAt time.Time
}

// NewDownloadStore creates the store and its temp directory.
func NewDownloadStore() (*DownloadStore, error) {
	dir, err := os.MkdirTemp("", "cvitae-exports-")
	if err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	return &DownloadStore{
		dir:     dir,
		entries: make(map[uuid.UUID]downloadEntry),
		ttl:     DefaultDownloadTTL,
		now:     time.Now,
	}, nil
}

// Put spools an artifact and returns its download ID.
func (s *DownloadStore) Put(artifact *Artifact) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	id := uuid.New()
	path := filepath.Join(s.dir, id.String()+"."+artifact.Format.Extension())
	if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
		return uuid.Nil, fmt.Errorf("failed to spool artifact: %w", err)
	}

	s.entries[id] = downloadEntry{
		format:    artifact.Format,
		filename:  artifact.Filename,
		path:      path,
		createdAt: s.now(),
	}
	return id, nil
}

// Get loads an artifact by download ID. Expired or unknown IDs report
// not-found.
func (s *DownloadStore) Get(id uuid.UUID) (*Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.createdAt) > s.ttl {
		s.removeLocked(id, entry)
		return nil, false
	}

	data, err := os.ReadFile(entry.path)
	if err != nil {
		s.removeLocked(id, entry)
		return nil, false
	}
	return &Artifact{Format: entry.format, Data: data, Filename: entry.filename}, true
}

// Close deletes every spooled artifact and the directory itself.
func (s *DownloadStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[uuid.UUID]downloadEntry)
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
	}
}

func (s *DownloadStore) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.entries {
		if entry.createdAt.Before(cutoff) {
			s.removeLocked(id, entry)
		}
	}
}

func (s *DownloadStore) removeLocked(id uuid.UUID, entry downloadEntry) {
	_ = os.Remove(entry.path)
	delete(s.entries, id)
}
