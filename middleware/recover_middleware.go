package middleware

import (
	"context"

	"go.uber.org/zap"

	"movierentals/message"
)

// RecoverMiddleware turns a panicking handler into an error response so one
// bad request cannot take down the worker serving it.
func RecoverMiddleware(logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Message) (resp *message.Message) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panicked",
						zap.String("operation", req.Operation),
						zap.Any("panic", r),
						zap.Stack("stack"))
					resp = message.NewError("internal server error")
				}
			}()
			return next(ctx, req)
		}
	}
}
