package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/vietddude/flamescan/internal/metrics"
)

// ResponseCache stores backend replies keyed by prompt digest.
type ResponseCache interface {
	GetResponse(ctx context.Context, digest string) (response string, found bool, err error)
	SetResponse(ctx context.Context, digest, response string) error
}

// CachedClient wraps a Client with a response cache so identical
// prompts reuse an earlier reply instead of a second backend call.
// Cache failures degrade to a plain backend call; they never fail the
// completion.
type CachedClient struct {
	inner Client
	cache ResponseCache
	model string
	log   *slog.Logger
}

var _ Client = (*CachedClient)(nil)

// NewCachedClient wraps client with the given cache. The model name is
// part of the cache key so switching models never replays stale replies.
func NewCachedClient(client Client, cache ResponseCache, model string) *CachedClient {
	return &CachedClient{
		inner: client,
		cache: cache,
		model: model,
		log:   slog.Default().With("component", "llm-cache"),
	}
}

func (c *CachedClient) Complete(ctx context.Context, prompt string) (string, error) {
	digest := promptDigest(c.model, prompt)

	cached, found, err := c.cache.GetResponse(ctx, digest)
	if err != nil {
		c.log.Warn("Response cache read failed", "error", err)
	} else if found {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	reply, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := c.cache.SetResponse(ctx, digest, reply); err != nil {
		c.log.Warn("Response cache write failed", "error", err)
	}
	return reply, nil
}

func promptDigest(model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
