package app

import (
	"time"

	"market-dispatch/internal/config"
	"market-dispatch/internal/http/middleware/ratelimit"
)

// newWebhookRateLimiter builds the per-chat limiter for the webhook
// endpoint. A zero rate disables limiting entirely.
func newWebhookRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	wh := cfg.Webhook
	if wh.RatePerMinute <= 0 {
		return ratelimit.NopLimiter{}
	}
	burst := wh.Burst
	if burst <= 0 {
		burst = wh.RatePerMinute
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       float64(wh.RatePerMinute) / time.Minute.Seconds(),
		Burst:      burst,
		TTL:        10 * time.Minute,
		MaxBuckets: 10_000,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}
