// Package jsonfile persists outcomes as a JSON array of
// [id, text, score] triples, the format the results file has always
// used. Every append rewrites the whole file through a temp file and
// an atomic rename, so a crash at any instant leaves either the old
// complete set or the new complete set, never a torn file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/infra/storage"
)

// Store is a file-backed ResultStore.
type Store struct {
	path     string
	mu       sync.RWMutex
	outcomes []domain.Outcome
}

var _ storage.ResultStore = (*Store)(nil)

// NewStore opens (or prepares to create) the results file at path. An
// existing file must parse as a complete array of valid triples; a
// malformed file is a fatal ErrMalformedStore, not something to guess
// around.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:     path,
		outcomes: make([]domain.Outcome, 0),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	if err := json.Unmarshal(data, &s.outcomes); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrMalformedStore, err)
	}
	if s.outcomes == nil {
		// File contained JSON null.
		return nil, fmt.Errorf("%w: top level is not an array", storage.ErrMalformedStore)
	}

	return s, nil
}

// Load returns a copy of every stored outcome in append order.
func (s *Store) Load(ctx context.Context) ([]domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out, nil
}

// Append adds one outcome and rewrites the file. The full set is
// re-serialized on every call: O(n) per append, but the file parses as
// a complete valid set at every instant, which is the property resume
// depends on.
func (s *Store) Append(ctx context.Context, outcome domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes = append(s.outcomes, outcome)
	if err := s.write(); err != nil {
		s.outcomes = s.outcomes[:len(s.outcomes)-1]
		return err
	}
	return nil
}

// CompletedIDs returns the set of tweet ids with a stored outcome.
func (s *Store) CompletedIDs(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{}, len(s.outcomes))
	for _, o := range s.outcomes {
		ids[o.TweetID] = struct{}{}
	}
	return ids, nil
}

// DeleteUnscored drops null-score outcomes and rewrites the file.
func (s *Store) DeleteUnscored(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Outcome, 0, len(s.outcomes))
	for _, o := range s.outcomes {
		if o.Scored() {
			kept = append(kept, o)
		}
	}

	removed := len(s.outcomes) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.outcomes
	s.outcomes = kept
	if err := s.write(); err != nil {
		s.outcomes = prev
		return 0, err
	}
	return removed, nil
}

// Len returns the number of stored outcomes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes)
}

// write serializes the full set to path+".tmp", syncs it to disk and
// renames it over the canonical file. Callers must hold mu.
func (s *Store) write() error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp results file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.outcomes); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode results: %w", err)
	}

	// The data has to be on disk before the rename makes it current.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync results file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp results file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace results file: %w", err)
	}
	return nil
}
