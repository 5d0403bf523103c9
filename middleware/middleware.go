// Package middleware wraps request handlers in an onion of cross-cutting
// behaviour: logging, metrics, rate limiting, timeouts and panic recovery.
package middleware

import (
	"context"

	"movierentals/message"
)

// HandlerFunc handles one request and returns the response to write back.
// A nil response means the handler produced nothing.
type HandlerFunc func(ctx context.Context, req *message.Message) *message.Message

type Middleware func(next HandlerFunc) HandlerFunc

// Chain combines middlewares so that the first one listed is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// statusOf labels a response for logs and metrics.
func statusOf(resp *message.Message) string {
	res, err := message.ResultOf(resp)
	switch {
	case err != nil:
		return "invalid"
	case res.IsOk():
		return "ok"
	}
	return "error"
}
