package restapi

import (
	"net/http"
	"time"

	"infracciones.transito.co/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter.
// Close releases the limiter.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Close stops the background work started by NewRestAPI.
func (api *RestAPI) Close() error {
	api.rateLimiter.Stop()
	return nil
}

// limited wraps an endpoint with the per-client rate limiter.
func (api *RestAPI) limited(handler http.HandlerFunc) http.Handler {
	return api.rateLimiter.Handler(handler)
}
