package storage

import (
	"context"
	"errors"

	"github.com/vietddude/flamescan/internal/core/domain"
)

var (
	// ErrMalformedStore is returned when an existing result store
	// cannot be parsed as a complete, valid outcome set.
	ErrMalformedStore = errors.New("result store is malformed")
)

// ResultStore persists terminal scoring outcomes. It is the single
// source of truth for completion: a tweet whose id appears here is
// never scored again. Append must be durable before it returns, and
// the store must stay loadable at every instant in between.
type ResultStore interface {
	// Load returns every stored outcome in append order.
	Load(ctx context.Context) ([]domain.Outcome, error)

	// Append durably adds one outcome.
	Append(ctx context.Context, outcome domain.Outcome) error

	// CompletedIDs returns the set of tweet ids with a stored outcome.
	CompletedIDs(ctx context.Context) (map[string]struct{}, error)

	// DeleteUnscored removes outcomes whose score is null so the next
	// run retries them. Returns the number removed.
	DeleteUnscored(ctx context.Context) (int, error)

	// Len returns the number of stored outcomes.
	Len() int
}
