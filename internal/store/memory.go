// internal/store/memory.go
//
// In-memory implementation of the Store interface for search jobs.
// Used by the HTTP server to track background searches.
//
// Characteristics:
//   - Stores *Job values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns a copy, so callers never observe a job mid-update.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
)

// ErrNotFound is returned for unknown job IDs.
var ErrNotFound = errors.New("store: job not found")

// Status is the lifecycle state of a search job.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one background search.
type Job struct {
	ID         string          `json:"id"`
	Mode       search.Mode     `json:"mode"`
	Status     Status          `json:"status"`
	Done       int             `json:"done"`
	Total      int             `json:"total"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt,omitzero"`
	Ranking    *search.Ranking `json:"-"`
}

// Store defines the persistence interface for search jobs.
type Store interface {
	// Save persists or replaces a job.
	Save(ctx context.Context, j *Job) error

	// Get retrieves a copy of a job by ID.
	Get(ctx context.Context, id string) (*Job, error)

	// Update applies fn to the stored job while holding the write lock.
	Update(ctx context.Context, id string, fn func(*Job)) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex    // guards jobs map
	jobs map[string]*Job // keyed by Job.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{jobs: make(map[string]*Job)}
}

// Save stores a copy of j.
func (m *memory) Save(ctx context.Context, j *Job) error {
	cp := *j
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = &cp
	return nil
}

// Get looks up a job by ID.
func (m *memory) Get(ctx context.Context, id string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, ErrNotFound
}

// Update mutates the stored job in place.
func (m *memory) Update(ctx context.Context, id string, fn func(*Job)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(j)
	return nil
}
