package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"movierentals/message"
)

func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Message) *message.Message {
			start := time.Now()
			resp := next(ctx, req)
			fields := []zap.Field{
				zap.String("operation", req.Operation),
				zap.Duration("duration", time.Since(start)),
				zap.String("status", statusOf(resp)),
			}
			if resp != nil && resp.Operation == message.StatusError {
				logger.Warn("request failed", append(fields, zap.String("reason", resp.Payload))...)
				return resp
			}
			logger.Info("request handled", fields...)
			return resp
		}
	}
}
