package emitter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vietddude/flamescan/internal/core/domain"
)

// NATSEmitter publishes outcomes to a NATS subject as JSON.
type NATSEmitter struct {
	nc      *nats.Conn
	subject string
}

var _ Emitter = (*NATSEmitter)(nil)

// outcomeEvent is the wire form; the triple array stays a storage
// format, consumers get named fields.
type outcomeEvent struct {
	TweetID string   `json:"tweet_id"`
	Text    string   `json:"text"`
	Score   *float64 `json:"score"`
	At      int64    `json:"at"`
}

// NewNATSEmitter connects to the NATS server at url.
func NewNATSEmitter(url, subject string) (*NATSEmitter, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSEmitter{nc: nc, subject: subject}, nil
}

func (e *NATSEmitter) Emit(ctx context.Context, outcome domain.Outcome) error {
	b, err := json.Marshal(outcomeEvent{
		TweetID: outcome.TweetID,
		Text:    outcome.Text,
		Score:   outcome.Score,
		At:      time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return e.nc.Publish(e.subject, b)
}

func (e *NATSEmitter) Close() error {
	if e.nc != nil {
		return e.nc.Drain()
	}
	return nil
}
