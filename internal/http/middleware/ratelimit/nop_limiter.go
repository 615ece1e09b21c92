package ratelimit

// NopLimiter admits every request. Stands in wherever limiting is
// disabled by configuration.
type NopLimiter struct{}

var _ Limiter = NopLimiter{}

// Allow always reports true.
func (NopLimiter) Allow(string) bool { return true }
