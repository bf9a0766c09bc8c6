package middleware

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimit caps attempts per client IP using a redis
// fixed-window counter. A nil client disables the limiter entirely.
// Redis failures fail open: a broken limiter must not lock everyone
// out of the sign-in page.
func LoginRateLimit(client *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	if client == nil || limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:login:" + clientIP(r)
			ctx := r.Context()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("ERROR [middleware.LoginRateLimit] redis incr failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(ctx, key, window)
			}

			if count > int64(limit) {
				ttl, _ := client.TTL(ctx, key).Result()
				if ttl > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(ttl/time.Second)+1))
				}
				writeJSONError(w, http.StatusTooManyRequests, "Too many login attempts")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
