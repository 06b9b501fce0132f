// Package debug captures diagnostic state for the admin API: recent log
// lines and failed-compilation sessions.
package debug

import (
	"strings"
	"sync"
)

// DefaultRingCapacity is the number of log lines the admin endpoint keeps.
const DefaultRingCapacity = 512

// Ring is a bounded, concurrency-safe buffer of recent log lines. Memory
// use is capped by construction; old lines are overwritten in place.
type Ring struct {
	mu      sync.Mutex
	entries []string
	next    int
	full    bool
}

// NewRing creates a ring holding at most capacity lines.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{entries: make([]string, capacity)}
}

// Add appends a line, overwriting the oldest when full.
func (r *Ring) Add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = line
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// Snapshot returns the buffered lines, oldest first.
func (r *Ring) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]string, r.next)
		copy(out, r.entries[:r.next])
		return out
	}
	out := make([]string, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Len returns the number of buffered lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.entries)
	}
	return r.next
}

// Write splits p into lines and adds each to the ring, satisfying
// io.Writer so the ring can sit behind the standard logger via
// io.MultiWriter.
func (r *Ring) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			r.Add(line)
		}
	}
	return len(p), nil
}
