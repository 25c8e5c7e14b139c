package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSummarizer struct {
	calls int
	err   error
}

func (s *countingSummarizer) Summarize(_ context.Context, text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "summary of " + text, nil
}

type memoryCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	c.lastTTL = ttl
	return nil
}

func TestCachedSummarizerHitsCache(t *testing.T) {
	next := &countingSummarizer{}
	cache := newMemoryCache()
	s := NewCachedSummarizer(next, cache, "gemini", time.Hour, zerolog.Nop())

	first, err := s.Summarize(context.Background(), "poured slab")
	require.NoError(t, err)
	second, err := s.Summarize(context.Background(), "poured slab")
	require.NoError(t, err)

	assert.Equal(t, "summary of poured slab", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, cache.lastTTL)
}

func TestCachedSummarizerIgnoresCacheErrors(t *testing.T) {
	next := &countingSummarizer{}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	s := NewCachedSummarizer(next, cache, "gemini", time.Hour, zerolog.Nop())

	summary, err := s.Summarize(context.Background(), "framing done")
	require.NoError(t, err)
	assert.Equal(t, "summary of framing done", summary)
	assert.Equal(t, 1, next.calls)
}

func TestCachedSummarizerPropagatesModelErrors(t *testing.T) {
	next := &countingSummarizer{err: errors.New("quota exceeded")}
	cache := newMemoryCache()
	s := NewCachedSummarizer(next, cache, "gemini", time.Hour, zerolog.Nop())

	_, err := s.Summarize(context.Background(), "text")
	assert.EqualError(t, err, "quota exceeded")
	assert.Empty(t, cache.values)
}

func TestCacheKeyDependsOnModel(t *testing.T) {
	assert.NotEqual(t, CacheKey("a", "text"), CacheKey("b", "text"))
	assert.Equal(t, CacheKey("a", "text"), CacheKey("a", "text"))
	assert.Contains(t, CacheKey("a", "text"), "summary:")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("  roof tiles delivered  ")
	assert.Equal(t, "Summarize this project update:\n\nroof tiles delivered", prompt)
}

func TestNewGenAISummarizerRequiresKey(t *testing.T) {
	_, err := NewGenAISummarizer(context.Background(), "", "gemini-2.5-flash")
	assert.Error(t, err)
}
