package memory

import (
	"context"
	"sync"

	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/infra/storage"
)

// MemoryStore is an in-memory ResultStore for tests and dry runs.
// Nothing survives the process; it exists so the pipeline can be
// exercised without touching disk.
type MemoryStore struct {
	outcomes []domain.Outcome
	mu       sync.RWMutex
}

var _ storage.ResultStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		outcomes: make([]domain.Outcome, 0),
	}
}

func (s *MemoryStore) Load(ctx context.Context) ([]domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, outcome domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcome)
	return nil
}

func (s *MemoryStore) CompletedIDs(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(s.outcomes))
	for _, o := range s.outcomes {
		ids[o.TweetID] = struct{}{}
	}
	return ids, nil
}

func (s *MemoryStore) DeleteUnscored(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Outcome, 0, len(s.outcomes))
	for _, o := range s.outcomes {
		if o.Scored() {
			kept = append(kept, o)
		}
	}
	removed := len(s.outcomes) - len(kept)
	s.outcomes = kept
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes)
}
