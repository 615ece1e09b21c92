package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"market-dispatch/internal/metrics"
)

// Counters groups the business metrics so dig providers can take them as
// one dependency instead of five identically typed ones.
type Counters struct {
	DispatchAssigned     prometheus.Counter
	DispatchRacesLost    prometheus.Counter
	DispatchNoCandidates prometheus.Counter
	NotifyFailures       prometheus.Counter
	WebhookRateLimited   prometheus.Counter
}

func newCounters() (Counters, error) {
	var c Counters
	var err error
	if c.DispatchAssigned, err = registerCounter("dispatch_assigned_total", metrics.NewDispatchAssignedTotal()); err != nil {
		return Counters{}, err
	}
	if c.DispatchRacesLost, err = registerCounter("dispatch_races_lost_total", metrics.NewDispatchRacesLostTotal()); err != nil {
		return Counters{}, err
	}
	if c.DispatchNoCandidates, err = registerCounter("dispatch_no_candidates_total", metrics.NewDispatchNoCandidatesTotal()); err != nil {
		return Counters{}, err
	}
	if c.NotifyFailures, err = registerCounter("notify_failures_total", metrics.NewNotifyFailuresTotal()); err != nil {
		return Counters{}, err
	}
	if c.WebhookRateLimited, err = registerCounter("webhook_rate_limited_total", metrics.NewWebhookRateLimitedTotal()); err != nil {
		return Counters{}, err
	}
	return c, nil
}

// registerCounter adds the counter to the default registry; a rebuilt
// container (tests) reuses the collector registered first.
func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
