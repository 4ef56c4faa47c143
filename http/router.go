package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the retirement routes behind the rate limiter and serves
// the collectors of gatherer on /metrics.
func NewRouter(
	handler *RetirementHandler,
	limiter *RateLimiter,
	gatherer prometheus.Gatherer,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(
		"/retirement",
		RateLimitMiddleware(limiter, http.HandlerFunc(handler.GetRetirement)),
	)

	mux.Handle(
		"/retirement/parameters",
		RateLimitMiddleware(limiter, http.HandlerFunc(handler.UpdateParameters)),
	)

	mux.Handle(
		"/retirement/schedule",
		RateLimitMiddleware(limiter, http.HandlerFunc(handler.GetSchedule)),
	)

	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}
