package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	c.Set("k", "v", 0)
	got, found := c.Get("k")
	if !found || got != "v" {
		t.Errorf("expected v, got %q (found=%v)", got, found)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestKey(t *testing.T) {
	if got := Key("lemma", "москве"); got != "corroborate:v1:lemma:москве" {
		t.Errorf("unexpected key %q", got)
	}
}
