package ratelimit

// Limiter decides whether a keyed caller may proceed.
type Limiter interface {
	Allow(key string) bool
}
