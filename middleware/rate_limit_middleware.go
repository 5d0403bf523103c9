package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"movierentals/message"
)

// RateLimitMiddleware rejects requests beyond r per second with bursts of
// burst, using a token bucket shared by every operation it wraps.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Message) *message.Message {
			if !limiter.Allow() {
				return message.NewError("rate limit exceeded")
			}
			return next(ctx, req)
		}
	}
}
