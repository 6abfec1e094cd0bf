package lemma

import (
	"time"

	"github.com/ppiankov/corroborate/internal/cache"
)

// Cached memoizes another normalizer
type Cached struct {
	inner Normalizer
	memo  cache.Cache
	ttl   time.Duration
}

// NewCached wraps inner with an expiring in-memory memo table
func NewCached(inner Normalizer, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		memo:  cache.NewMemoryCache(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Lemma returns the memoized lemma of word
func (c *Cached) Lemma(word string) string {
	key := cache.Key("lemma", word)
	if lemma, ok := c.memo.Get(key); ok {
		return lemma
	}

	lemma := c.inner.Lemma(word)
	c.memo.Set(key, lemma, c.ttl)
	return lemma
}
