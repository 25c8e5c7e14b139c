package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedSummarizer memoizes summaries by model and text. Cache failures are
// logged and never fail the request.
type CachedSummarizer struct {
	next  Summarizer
	cache Cache
	model string
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedSummarizer(next Summarizer, cache Cache, model string, ttl time.Duration, log zerolog.Logger) *CachedSummarizer {
	return &CachedSummarizer{next: next, cache: cache, model: model, ttl: ttl, log: log}
}

func (s *CachedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	key := CacheKey(s.model, text)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("summary cache read failed")
	} else if ok {
		return cached, nil
	}

	summary, err := s.next.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("summary cache write failed")
	}
	return summary, nil
}

func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "summary:" + hex.EncodeToString(sum[:])
}
