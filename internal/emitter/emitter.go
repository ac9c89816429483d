// Package emitter publishes terminal outcomes to downstream consumers.
package emitter

import (
	"context"
	"log/slog"

	"github.com/vietddude/flamescan/internal/core/domain"
)

// Emitter defines the interface for emitting outcome events. Emission
// is best-effort: the pipeline logs failures and moves on, it never
// blocks scoring on a consumer.
type Emitter interface {
	// Emit sends a single outcome
	Emit(ctx context.Context, outcome domain.Outcome) error

	// Close closes the emitter connection
	Close() error
}

// LogEmitter writes outcomes to the structured log. It is the default
// when no event bus is configured.
type LogEmitter struct{}

func (e *LogEmitter) Emit(ctx context.Context, outcome domain.Outcome) error {
	if outcome.Scored() {
		slog.Debug("Outcome", "tweet", outcome.TweetID, "score", *outcome.Score)
	} else {
		slog.Debug("Outcome", "tweet", outcome.TweetID, "score", nil)
	}
	return nil
}

func (e *LogEmitter) Close() error { return nil }
