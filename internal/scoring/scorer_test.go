package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/flamescan/internal/core/domain"
)

// fakeClient fails a fixed number of times before answering.
type fakeClient struct {
	mu       sync.Mutex
	failures int
	reply    string
	calls    int
}

func (c *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.failures {
		return "", fmt.Errorf("backend unavailable (call %d)", c.calls)
	}
	return c.reply, nil
}

func fastBackoff() BackoffPolicy {
	return BackoffPolicy{Base: time.Millisecond, Cap: 5 * time.Millisecond, JitterStep: 0}
}

func testTweet() domain.Tweet {
	return domain.Tweet{ID: "100", Text: "some tweet"}
}

func TestScore_FirstAttemptSuccess(t *testing.T) {
	client := &fakeClient{reply: "8"}
	s := NewScorer(client, Config{Backoff: fastBackoff()})

	out, err := s.Score(context.Background(), testTweet())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if out.Score == nil || *out.Score != 8 {
		t.Errorf("Score = %v, want 8", out.Score)
	}
	if out.TweetID != "100" || out.Text != "some tweet" {
		t.Errorf("outcome = %+v", out)
	}
	if client.calls != 1 {
		t.Errorf("calls = %d, want 1", client.calls)
	}
}

func TestScore_RetriesThenSucceeds(t *testing.T) {
	client := &fakeClient{failures: 3, reply: "5"}
	s := NewScorer(client, Config{MaxAttempts: 5, Backoff: fastBackoff()})

	out, err := s.Score(context.Background(), testTweet())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if out.Score == nil || *out.Score != 5 {
		t.Errorf("Score = %v, want 5", out.Score)
	}
	if client.calls != 4 {
		t.Errorf("calls = %d, want 4", client.calls)
	}
}

func TestScore_ExhaustionYieldsNullNotError(t *testing.T) {
	client := &fakeClient{failures: 100}
	s := NewScorer(client, Config{MaxAttempts: 3, Backoff: fastBackoff()})

	out, err := s.Score(context.Background(), testTweet())
	if err != nil {
		t.Fatalf("exhaustion must not return an error, got: %v", err)
	}
	if out.Scored() {
		t.Errorf("Score = %v, want nil after exhaustion", out.Score)
	}
	if out.TweetID != "100" {
		t.Errorf("TweetID = %s, want 100", out.TweetID)
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want exactly MaxAttempts", client.calls)
	}
}

func TestScore_UnparseableReplyIsTerminal(t *testing.T) {
	client := &fakeClient{reply: "判断できません"}
	s := NewScorer(client, Config{MaxAttempts: 5, Backoff: fastBackoff()})

	out, err := s.Score(context.Background(), testTweet())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if out.Scored() {
		t.Errorf("Score = %v, want nil", out.Score)
	}
	if client.calls != 1 {
		t.Errorf("calls = %d; an unparseable reply must not be retried", client.calls)
	}
}

func TestScore_CancellationBetweenAttempts(t *testing.T) {
	client := &fakeClient{failures: 100}
	s := NewScorer(client, Config{MaxAttempts: 5, Backoff: BackoffPolicy{
		Base: time.Hour, Cap: time.Hour, JitterStep: 0,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Score(ctx, testTweet())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Score error = %v, want context.Canceled", err)
	}
	if client.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries after cancel)", client.calls)
	}
}

func TestScore_CompletedAttemptSurvivesCancellation(t *testing.T) {
	client := &fakeClient{reply: "6"}
	s := NewScorer(client, Config{Backoff: fastBackoff()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := s.Score(ctx, testTweet())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if out.Score == nil || *out.Score != 6 {
		t.Errorf("Score = %v, want 6 even under a canceled context", out.Score)
	}
}

func TestScore_ClampsBackendValue(t *testing.T) {
	client := &fakeClient{reply: "42"}
	s := NewScorer(client, Config{Backoff: fastBackoff()})

	out, err := s.Score(context.Background(), testTweet())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if out.Score == nil || *out.Score != 10 {
		t.Errorf("Score = %v, want clamped 10", out.Score)
	}
}
