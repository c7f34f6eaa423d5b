package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"pqr-api/internal/auth"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/ratelimit"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces rate limiting per authenticated usuario,
// falling back to the client IP for unauthenticated routes such as the
// embedded intake.
func RateLimitMiddleware(limiter *ratelimit.RedisRateLimiter, limitPerMin int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.GetLogger(ctx)

			subject := rateLimitSubject(r)

			allowed, remaining, err := limiter.AllowRequest(ctx, subject, limitPerMin, 60)
			if err != nil {
				// Redis being down must not take the API with it
				log.Error(ctx, "rate limit check failed",
					logger.Module("ratelimit"), logger.Action("allow_request"), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limitPerMin))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(60*time.Second).Unix()))

			if !allowed {
				span := trace.SpanFromContext(ctx)
				span.AddEvent("rate_limit_exceeded")

				log.Warn(ctx, "rate limit exceeded",
					logger.Module("ratelimit"), logger.Action("allow_request"),
					zap.String("subject", subject),
					zap.Int("limit", limitPerMin),
				)

				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitSubject(r *http.Request) string {
	if usuario, ok := auth.GetUsuario(r.Context()); ok {
		return "usuario:" + strconv.FormatInt(usuario.ID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
