package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resumatch/backend/internal/logger"
)

// RateLimitMiddleware returns a middleware limiting each client IP to max
// requests per window, counted in Redis. The limiter fails open: when Redis
// is unreachable the request is allowed and the error is logged.
func RateLimitMiddleware(rdb *redis.Client, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := fmt.Sprintf("ratelimit:%s", clientIP(r))

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Log.Errorw("rate limiter unavailable", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					logger.Log.Errorw("failed to set rate limit window", "err", err)
				}
			}

			if count > int64(max) {
				logger.Log.Warnw("rate limit exceeded", "ip", clientIP(r), "count", count)
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
