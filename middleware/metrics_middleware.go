package middleware

import (
	"context"
	"time"

	"movierentals/message"
	"movierentals/metrics"
)

func MetricsMiddleware(c *metrics.Collector) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Message) *message.Message {
			start := time.Now()
			resp := next(ctx, req)
			c.ObserveRequest(req.Operation, statusOf(resp), time.Since(start))
			return resp
		}
	}
}
