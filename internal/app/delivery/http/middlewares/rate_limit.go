package middlewares

import (
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// DefaultRateLimit throttles every route per client IP.
func (m *Middlewares) DefaultRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}

// StrictRateLimit guards the destructive bulk endpoints.
func (m *Middlewares) StrictRateLimit() func(next http.Handler) http.Handler {
	limiter := NewRateLimiter(
		m.InternalConfig.App.StrictRateLimitRequests,
		time.Duration(m.InternalConfig.App.StrictRateLimitWindowSec)*time.Second,
		time.Duration(m.InternalConfig.App.StrictRateLimitBlockSec)*time.Second,
		m.Log,
	)
	return limiter.Limit
}
