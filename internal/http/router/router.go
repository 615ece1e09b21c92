package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"market-dispatch/internal/http/handlers"
	mw "market-dispatch/internal/http/middleware"
	"market-dispatch/internal/http/middleware/ratelimit"
	"market-dispatch/internal/logx"
)

// Deps groups everything the router mounts.
type Deps struct {
	Logger   logx.Logger
	Base     *handlers.Handlers
	Couriers *handlers.CourierHandler
	Orders   *handlers.OrderHandler
	Webhook  *handlers.WebhookHandler
	// Limiter guards the whole surface per client IP; nil disables.
	Limiter ratelimit.Limiter
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Observability(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	if d.Limiter != nil {
		r.Use(ratelimit.New(d.Logger, nil, d.Limiter).Handler())
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/couriers", d.Couriers.List)
	r.Route("/courier", func(r chi.Router) {
		r.Post("/", d.Couriers.Create)
		r.Put("/", d.Couriers.Update)
		r.Get("/{id}", d.Couriers.GetByID)
	})

	r.Route("/order/{orderID}", func(r chi.Router) {
		r.Get("/", d.Orders.Get)
		r.Post("/dispatch", d.Orders.Dispatch)
		r.Post("/action", d.Orders.Action)
		r.Post("/cancel", d.Orders.Cancel)
		r.Post("/complete", d.Orders.Complete)
	})

	r.Post("/webhook/telegram", d.Webhook.Handle)

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
