package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/report"
)

// MemoryStore keeps reports in a map. Reports are copied on the way in and
// out, so callers may modify what they pass or receive.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*report.Report), now: time.Now}
}

func clone(r *report.Report) *report.Report {
	c := *r
	c.Bounds = slices.Clone(r.Bounds)
	c.Orderings = slices.Clone(r.Orderings)
	return &c
}

func (s *MemoryStore) Save(ctx context.Context, r *report.Report) (string, error) {
	prepare(r, s.now())
	s.mu.Lock()
	s.reports[r.ID] = clone(r)
	s.mu.Unlock()
	return r.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	r, ok := s.reports[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "report %s not found", id)
	}
	return clone(r), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	s.mu.RLock()
	out := make([]*report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, clone(r))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *report.Report) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "report %s not found", id)
	}
	delete(s.reports, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
