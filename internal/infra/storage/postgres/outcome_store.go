package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vietddude/flamescan/internal/core/domain"
	"github.com/vietddude/flamescan/internal/infra/storage"
)

// OutcomeStore implements storage.ResultStore on PostgreSQL. Unlike
// the JSON file store an append is a single INSERT, not a full
// rewrite; durability comes from the database instead of the
// tmp-and-rename dance.
type OutcomeStore struct {
	db    *DB
	count atomic.Int64
}

var _ storage.ResultStore = (*OutcomeStore)(nil)

type outcomeRow struct {
	TweetID string   `db:"tweet_id"`
	Body    string   `db:"body"`
	Score   *float64 `db:"score"`
}

// NewOutcomeStore creates a store over an already-migrated database.
func NewOutcomeStore(ctx context.Context, db *DB) (*OutcomeStore, error) {
	s := &OutcomeStore{db: db}

	var count int64
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM outcomes"); err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	s.count.Store(count)

	return s, nil
}

// Load returns every stored outcome in append order.
func (s *OutcomeStore) Load(ctx context.Context) ([]domain.Outcome, error) {
	var rows []outcomeRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT tweet_id, body, score FROM outcomes ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to load outcomes: %w", err)
	}

	outcomes := make([]domain.Outcome, len(rows))
	for i, r := range rows {
		outcomes[i] = domain.Outcome{TweetID: r.TweetID, Text: r.Body, Score: r.Score}
	}
	return outcomes, nil
}

// Append durably adds one outcome.
func (s *OutcomeStore) Append(ctx context.Context, outcome domain.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO outcomes (tweet_id, body, score) VALUES ($1, $2, $3)",
		outcome.TweetID, outcome.Text, outcome.Score)
	if err != nil {
		return fmt.Errorf("failed to append outcome: %w", err)
	}
	s.count.Add(1)
	return nil
}

// CompletedIDs returns the set of tweet ids with a stored outcome.
func (s *OutcomeStore) CompletedIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, "SELECT DISTINCT tweet_id FROM outcomes")
	if err != nil {
		return nil, fmt.Errorf("failed to load completed ids: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// DeleteUnscored removes null-score outcomes.
func (s *OutcomeStore) DeleteUnscored(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM outcomes WHERE score IS NULL")
	if err != nil {
		return 0, fmt.Errorf("failed to delete unscored outcomes: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.count.Add(-removed)
	return int(removed), nil
}

// Len returns the number of stored outcomes.
func (s *OutcomeStore) Len() int {
	return int(s.count.Load())
}
