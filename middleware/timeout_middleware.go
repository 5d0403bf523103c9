package middleware

import (
	"context"
	"time"

	"movierentals/message"
)

// outcome is what the handler goroutine of TimeoutMiddleware hands back.
type outcome struct {
	resp     *message.Message
	panicked any
}

// TimeoutMiddleware replies "request timed out" when next takes longer than
// timeout. A panic in next is raised again in the caller's goroutine, so
// an outer RecoverMiddleware still sees it; a panic after the timeout is
// dropped.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Message) *message.Message {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan outcome, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- outcome{panicked: r}
					}
				}()
				done <- outcome{resp: next(ctx, req)}
			}()

			select {
			case out := <-done:
				if out.panicked != nil {
					panic(out.panicked)
				}
				return out.resp
			case <-ctx.Done():
				return message.NewError("request timed out")
			}
		}
	}
}
