package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vietddude/flamescan/internal/archive"
	"github.com/vietddude/flamescan/internal/core/config"
	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/emitter"
	"github.com/vietddude/flamescan/internal/health"
	redisclient "github.com/vietddude/flamescan/internal/infra/redis"
	"github.com/vietddude/flamescan/internal/infra/storage"
	"github.com/vietddude/flamescan/internal/infra/storage/jsonfile"
	"github.com/vietddude/flamescan/internal/infra/storage/postgres"
	"github.com/vietddude/flamescan/internal/llm"
	"github.com/vietddude/flamescan/internal/pipeline"
	"github.com/vietddude/flamescan/internal/scoring"

	"github.com/google/uuid"
)

// Runner is the main application struct that manages the scoring run lifecycle.
type Runner struct {
	cfg          Config
	tweets       []domain.Tweet
	pipe         *pipeline.Pipeline
	healthServer *health.Server
	store        storage.ResultStore
	db           *postgres.DB
	redisClient  *redisclient.Client
	emit         emitter.Emitter
	log          *slog.Logger
	runID        string
}

// Config holds the application configuration.
type Config struct {
	Port       int
	Archive    config.ArchiveConfig
	Store      config.StoreConfig
	Scoring    config.ScoringConfig
	Cache      config.CacheConfig
	Events     config.EventsConfig
	OnProgress func(done, total int)
}

// NewRunner creates a new Runner instance with all dependencies initialized.
func NewRunner(cfg Config) (*Runner, error) {
	runID := uuid.New().String()
	log := slog.Default().With("run_id", runID)

	// 1. Initialize Storage
	store, db, err := openStore(context.Background(), cfg.Store)
	if err != nil {
		return nil, err
	}

	// 2. Load Archive
	tweets, err := archive.Load(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	// 3. Initialize Scoring Backend
	backend := llm.NewOpenAIClient(llm.Config{
		Endpoint: cfg.Scoring.Endpoint,
		Model:    cfg.Scoring.Model,
		APIKey:   cfg.Scoring.APIKey,
		Timeout:  time.Duration(cfg.Scoring.RequestTimeout),
	})

	var client llm.Client = backend
	var redisClient *redisclient.Client
	if cfg.Cache.URL != "" {
		redisClient, err = redisclient.NewClient(redisclient.Config{
			URL:      cfg.Cache.URL,
			Password: cfg.Cache.Password,
			TTL:      time.Duration(cfg.Cache.TTL),
		})
		if err != nil {
			slog.Warn("Failed to connect to Redis, cache disabled", "error", err)
			redisClient = nil
		} else {
			client = llm.NewCachedClient(backend, redisClient, cfg.Scoring.Model)
			slog.Info("Response cache enabled", "url", cfg.Cache.URL)
		}
	}

	scorer := scoring.NewScorer(client, scoring.Config{
		Instruction: cfg.Scoring.Prompt,
		MaxAttempts: cfg.Scoring.MaxAttempts,
		ScoreMin:    cfg.Scoring.ScoreMin,
		ScoreMax:    cfg.Scoring.ScoreMax,
	})

	// 4. Initialize Emitter
	var emit emitter.Emitter = &emitter.LogEmitter{}
	if cfg.Events.URL != "" {
		natsEmit, err := emitter.NewNATSEmitter(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			slog.Warn("Failed to connect to NATS, events disabled", "error", err)
		} else {
			emit = natsEmit
			slog.Info("Outcome events enabled", "subject", cfg.Events.Subject)
		}
	}

	// 5. Create Pipeline
	pipe := pipeline.New(pipeline.Config{
		Scorer:      scorer,
		Store:       store,
		Emitter:     emit,
		Concurrency: cfg.Scoring.Concurrency,
		OnProgress:  cfg.OnProgress,
	})

	// 6. Initialize Health Server
	var healthServer *health.Server
	if cfg.Port > 0 {
		monitor := health.NewMonitor(runID, backend, pipe.Progress(), store)
		healthServer = health.NewServer(monitor, cfg.Port)
	}

	return &Runner{
		cfg:          cfg,
		tweets:       tweets,
		pipe:         pipe,
		healthServer: healthServer,
		store:        store,
		db:           db,
		redisClient:  redisClient,
		emit:         emit,
		log:          log,
		runID:        runID,
	}, nil
}

// openStore builds the configured result store. The returned DB is nil
// in JSON file mode.
func openStore(ctx context.Context, cfg config.StoreConfig) (storage.ResultStore, *postgres.DB, error) {
	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		store, err := postgres.NewOutcomeStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("Using PostgreSQL store")
		return store, db, nil
	}

	store, err := jsonfile.NewStore(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Using JSON file store", "path", cfg.Path)
	return store, nil, nil
}

// OpenStore opens the configured result store for one-off commands.
// The caller must invoke the returned cleanup function.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (storage.ResultStore, func(), error) {
	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}
	return store, cleanup, nil
}

// Tweets returns the archive contents loaded at startup.
func (r *Runner) Tweets() []domain.Tweet {
	return r.tweets
}

// Progress exposes the live run counters.
func (r *Runner) Progress() *pipeline.Tracker {
	return r.pipe.Progress()
}

// Run executes the scoring pipeline, blocking until every pending
// tweet has a stored outcome or ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	if r.db != nil {
		r.db.StartPoolMetrics(ctx)
	}

	if r.healthServer != nil {
		go func() {
			if err := r.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.log.Error("Health server failed", "error", err)
			}
		}()
		r.log.Info("Health server started", "port", r.cfg.Port)
	}

	return r.pipe.Run(ctx, r.tweets)
}

// Stop releases the runner's connections.
func (r *Runner) Stop(ctx context.Context) error {
	r.log.Info("Stopping runner...")

	if err := r.emit.Close(); err != nil {
		r.log.Warn("Failed to close emitter", "error", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			r.log.Warn("Failed to close database", "error", err)
		}
	}

	if r.healthServer != nil {
		return r.healthServer.Stop(ctx)
	}
	return nil
}
