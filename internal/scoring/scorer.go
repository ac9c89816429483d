package scoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/llm"
)

// Config holds per-item scoring settings.
type Config struct {
	Instruction string // empty = DefaultInstruction
	MaxAttempts int
	Backoff     BackoffPolicy
	ScoreMin    float64
	ScoreMax    float64
}

// Scorer resolves one tweet to a terminal outcome: a numeric score, or
// nil when the backend never produced a usable number. Backend faults
// are retried with backoff and never escape; the only error a Scorer
// returns is context cancellation, which means the tweet reached no
// terminal state and stays pending for the next run.
type Scorer struct {
	client      llm.Client
	instruction string
	maxAttempts int
	backoff     BackoffPolicy
	interp      Interpreter
	log         *slog.Logger
}

// NewScorer creates a scorer over the given backend client.
func NewScorer(client llm.Client, cfg Config) *Scorer {
	if cfg.Instruction == "" {
		cfg.Instruction = DefaultInstruction
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Backoff == (BackoffPolicy{}) {
		cfg.Backoff = DefaultBackoff()
	}
	if cfg.ScoreMax == 0 {
		cfg.ScoreMax = 10
	}

	return &Scorer{
		client:      client,
		instruction: cfg.Instruction,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		interp:      Interpreter{Low: cfg.ScoreMin, High: cfg.ScoreMax},
		log:         slog.Default().With("component", "scorer"),
	}
}

// Score resolves a single tweet. Cancellation is honored between
// attempts; an attempt already in flight is allowed to finish so a
// completed reply is never thrown away during shutdown.
func (s *Scorer) Score(ctx context.Context, tweet domain.Tweet) (domain.Outcome, error) {
	prompt := BuildPrompt(s.instruction, tweet.Text)

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		reply, err := s.client.Complete(context.WithoutCancel(ctx), prompt)
		if err == nil {
			score := s.interp.Interpret(reply)
			if score == nil {
				s.log.Debug("Reply contained no number", "tweet", tweet.ID, "reply", reply)
			}
			return domain.Outcome{TweetID: tweet.ID, Text: tweet.Text, Score: score}, nil
		}

		lastErr = err
		if attempt == s.maxAttempts-1 {
			break
		}

		delay := s.backoff.Delay(attempt)
		s.log.Debug("Backend fault, retrying",
			"tweet", tweet.ID,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return domain.Outcome{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	s.log.Warn("Scoring attempts exhausted",
		"tweet", tweet.ID,
		"attempts", s.maxAttempts,
		"error", lastErr,
	)
	return domain.Outcome{TweetID: tweet.ID, Text: tweet.Text}, nil
}
