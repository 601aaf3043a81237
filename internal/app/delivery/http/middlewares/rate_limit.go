package middlewares

import (
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimit is the coarse per-IP request limit applied to every route.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRateLimited(nil, r.RemoteAddr))
		}),
	)
}

// ScoreQuota enforces the per-host scoring quota on top of RateLimit. A
// limiter failure lets the request through.
func (m *Middlewares) ScoreQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := utils.GetClientID(r)
		requestID := utils.GetRequestID(r.Context())

		output, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &contracts.ApplyResourceLimiterInput{
			ResourceName:      utils.GetRemoteHost(r),
			LimiterGroupName:  constvars.ScoreLimiterGroupName,
			WindowDurationSec: m.InternalConfig.ScoreQuota.WindowDurationSec,
			MaxQuota:          m.InternalConfig.ScoreQuota.MaxQuota,
		})
		if err != nil {
			m.Log.Warn("Score quota could not be evaluated, allowing request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingClientIDKey, clientID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !output.Allowed {
			m.Log.Info("Score quota exceeded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingClientIDKey, clientID),
				zap.Int(constvars.LoggingRetryAfterKey, output.RetryAfterSecs),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(output.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrScoreQuotaExceeded(nil, clientID))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LimitRequestBody caps the body size; decoding past the limit fails with a
// *http.MaxBytesError that the controllers map to 413.
func (m *Middlewares) LimitRequestBody(next http.Handler) http.Handler {
	limit := m.InternalConfig.App.RequestBodyLimitInKilobyte * 1024
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
