package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewDispatchAssignedTotal returns a Prometheus counter for successfully committed assignments
func NewDispatchAssignedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assigned_total",
		Help: "Total number of orders successfully assigned to a courier",
	})
}

// NewDispatchRacesLostTotal returns a Prometheus counter for assignment attempts that lost the conditional-update race
func NewDispatchRacesLostTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_races_lost_total",
		Help: "Total number of assignment attempts that found the order already claimed",
	})
}

// NewDispatchNoCandidatesTotal returns a Prometheus counter for dispatch attempts with zero eligible couriers
func NewDispatchNoCandidatesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_no_candidates_total",
		Help: "Total number of dispatch attempts that found no eligible courier",
	})
}

// NewNotifyFailuresTotal returns a Prometheus counter for failed messaging-channel deliveries
func NewNotifyFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_failures_total",
		Help: "Total number of failed messaging-channel deliveries",
	})
}

// NewWebhookRateLimitedTotal returns a Prometheus counter for webhook updates rejected by the per-chat rate limiter
func NewWebhookRateLimitedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_rate_limited_total",
		Help: "Total number of webhook updates rejected by the per-chat rate limiter",
	})
}
