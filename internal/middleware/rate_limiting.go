package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/2beens/fitquest/internal/auth"
	"github.com/2beens/fitquest/internal/telemetry/metrics"
	"github.com/2beens/fitquest/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// KeyFunc picks the identity a request is limited by.
type KeyFunc func(r *http.Request) string

// KeyByIP limits per client address.
func KeyByIP(r *http.Request) string {
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		return "unknown"
	}
	return ip
}

// KeyByUser limits per authenticated user, falling back to the client address.
func KeyByUser(r *http.Request) string {
	if userID, ok := auth.UserIDFrom(r.Context()); ok {
		return "user:" + strconv.Itoa(userID)
	}
	return KeyByIP(r)
}

func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
	keyFunc KeyFunc,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := routerName
			if keyFunc != nil {
				key = routerName + "|" + keyFunc(r)
			}

			res, err := rateLimiter.Allow(r.Context(), key, redis_rate.PerMinute(allowedPerMin))
			if err != nil {
				log.Errorf("rate limit [%s]: %s", key, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			log.Debugf("rate limited [%s], retry after %s", key, res.RetryAfter)

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			http.Error(
				w,
				fmt.Sprintf("retry after %.1f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}
