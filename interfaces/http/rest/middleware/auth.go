package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/pkg/auth"
	"github.com/CamilaNiebles/sls-assesment/pkg/common"
)

// Authenticate resolves the request principal and stores it in the context.
// Every failure mode collapses to a single 401 body so callers cannot probe
// which part of authentication failed. Rate limits answer 429 before any
// token work happens.
func Authenticate(
	resolver auth.PrincipalResolver,
	ipLimiter *auth.TokenBucketLimiter,
	userLimiter *auth.TokenBucketLimiter,
	logger *zap.Logger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if allowed, _ := ipLimiter.Allow(r.Context(), clientIP); !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			principalID, err := resolver.Resolve(r)
			if err != nil {
				logger.Warn("Authentication failed",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if allowed, _ := userLimiter.Allow(r.Context(), principalID); !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "User rate limit exceeded")
				return
			}

			ctx := auth.SetPrincipal(r.Context(), principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
