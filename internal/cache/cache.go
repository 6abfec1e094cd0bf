package cache

import "time"

// Cache defines the interface for string memoization
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Len() int
}

// Key namespaces a cache key so several memo tables can share one cache
func Key(namespace, key string) string {
	return "corroborate:v1:" + namespace + ":" + key
}
