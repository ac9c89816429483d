// Package pipeline dispatches pending tweets to the scorer under a
// fixed concurrency ceiling and funnels every terminal outcome through
// a single writer into the result store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/emitter"
	"github.com/vietddude/flamescan/internal/infra/storage"
	"github.com/vietddude/flamescan/internal/metrics"
)

// Scorer resolves one tweet to a terminal outcome. An error means no
// terminal state was reached (cancellation); the tweet stays pending.
type Scorer interface {
	Score(ctx context.Context, tweet domain.Tweet) (domain.Outcome, error)
}

// Config holds the pipeline dependencies and settings.
type Config struct {
	Scorer      Scorer
	Store       storage.ResultStore
	Emitter     emitter.Emitter       // optional
	Concurrency int                   // <=0 means 5
	OnProgress  func(done, total int) // optional, called from the writer only
}

// Pipeline is a single-run orchestrator.
type Pipeline struct {
	cfg     Config
	tracker Tracker
	running atomic.Bool
	log     *slog.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	return &Pipeline{
		cfg: cfg,
		log: slog.Default().With("component", "pipeline"),
	}
}

// Progress exposes the run counters for the health endpoint.
func (p *Pipeline) Progress() *Tracker {
	return &p.tracker
}

// Run scores every tweet that has no stored outcome yet and appends
// the results as they arrive, in completion order. Canceling ctx stops
// admission: tweets never handed to the scorer stay pending for the
// next run, while in-flight ones drain to the store. Run returns nil
// on interruption; only store failures are errors.
func (p *Pipeline) Run(ctx context.Context, tweets []domain.Tweet) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("pipeline already running")
	}
	defer p.running.Store(false)

	completed, err := p.cfg.Store.CompletedIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load completed ids: %w", err)
	}

	// Pending = archive order minus whatever the store already holds.
	pending := make([]domain.Tweet, 0, len(tweets))
	for _, tw := range tweets {
		if _, done := completed[tw.ID]; !done {
			pending = append(pending, tw)
		}
	}

	p.tracker.Begin(len(tweets), len(completed))
	metrics.PendingTweets.Set(float64(len(pending)))
	metrics.StoreOutcomes.Set(float64(p.cfg.Store.Len()))

	p.log.Info("Starting run",
		"tweets", len(tweets),
		"already_done", len(completed),
		"pending", len(pending),
		"concurrency", p.cfg.Concurrency,
	)

	if p.cfg.OnProgress != nil {
		p.cfg.OnProgress(len(completed), len(tweets))
	}
	if len(pending) == 0 {
		return nil
	}

	// runCtx gates admission and the scorer's retry waits. The writer
	// deliberately does not use it: outcomes already produced must
	// reach the store even while shutting down.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan domain.Outcome)

	var writerErr error
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		appendCtx := context.WithoutCancel(ctx)

		for out := range results {
			if writerErr != nil {
				continue // drain so workers never block on send
			}
			if err := p.cfg.Store.Append(appendCtx, out); err != nil {
				writerErr = err
				cancel()
				continue
			}
			p.record(appendCtx, out)
		}
	}()

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)

	for _, tw := range pending {
		if runCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if runCtx.Err() != nil {
				return nil
			}
			out, err := p.cfg.Scorer.Score(runCtx, tw)
			if err != nil {
				// No terminal outcome; the tweet stays pending.
				return nil
			}
			results <- out
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	<-writerDone

	if writerErr != nil {
		return fmt.Errorf("failed to persist outcome: %w", writerErr)
	}

	snap := p.tracker.Snapshot()
	if ctx.Err() != nil {
		p.log.Info("Run interrupted",
			"done", snap.Done,
			"pending", snap.Pending,
		)
	} else {
		p.log.Info("Run complete",
			"scored", snap.Scored,
			"nulls", snap.Nulls,
			"stored", p.cfg.Store.Len(),
		)
	}
	return nil
}

// record updates counters and side channels for one appended outcome.
// Only the writer goroutine calls it.
func (p *Pipeline) record(ctx context.Context, out domain.Outcome) {
	p.tracker.Record(out.Scored())

	if out.Scored() {
		metrics.TweetsScored.WithLabelValues("scored").Inc()
	} else {
		metrics.TweetsScored.WithLabelValues("null").Inc()
	}
	metrics.StoreOutcomes.Set(float64(p.cfg.Store.Len()))
	metrics.PendingTweets.Dec()

	if p.cfg.Emitter != nil {
		if err := p.cfg.Emitter.Emit(ctx, out); err != nil {
			metrics.EventsEmitted.WithLabelValues("error").Inc()
			p.log.Warn("Failed to emit outcome", "tweet", out.TweetID, "error", err)
		} else {
			metrics.EventsEmitted.WithLabelValues("ok").Inc()
		}
	}

	if p.cfg.OnProgress != nil {
		snap := p.tracker.Snapshot()
		p.cfg.OnProgress(snap.Done, snap.Total)
	}
}
