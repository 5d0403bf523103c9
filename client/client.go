// Package client is the asynchronous call facade of movie rentals. Calls are
// submitted to a fixed pool of workers and answered through a Future, so a
// caller can issue several requests and collect the results later.
package client

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"movierentals/message"
	"movierentals/transport"
)

// ErrClosed resolves calls submitted after Close.
const ErrClosed = errors.ConstError("client closed")

// BusinessError is a well-formed error response from the server, such as
// "Movie not found.".
type BusinessError struct {
	Operation string
	Message   string
}

func (e *BusinessError) Error() string {
	return e.Operation + ": " + e.Message
}

type task struct {
	req    *message.Message
	future *Future
}

type Client struct {
	caller      transport.Caller
	logger      *zap.Logger
	workers     int
	callTimeout time.Duration

	wg sync.WaitGroup

	mu     sync.Mutex
	ready  *sync.Cond // signalled when queue grows or the client closes
	queue  []task     // pending calls, unbounded
	closed bool
}

type Option func(*Client)

// WithWorkers sets how many calls run at once. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCallTimeout bounds every call. Zero means no limit.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) { c.callTimeout = d }
}

// New starts a client whose workers send requests through caller.
func New(caller transport.Caller, opts ...Option) *Client {
	c := &Client{
		caller:      caller,
		logger:      zap.NewNop(),
		workers:     runtime.NumCPU(),
		callTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ready = sync.NewCond(&c.mu)
	c.wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		go c.worker()
	}
	return c
}

// Submit queues a call of operation with payload. It never blocks; calls
// wait in the queue until a worker is free.
func (c *Client) Submit(operation, payload string) *Future {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return resolved("", errors.Annotatef(ErrClosed, "submitting %s", operation))
	}
	f := newFuture()
	c.queue = append(c.queue, task{req: message.NewRequest(operation, payload), future: f})
	c.ready.Signal()
	return f
}

// Close waits for queued calls to finish and stops the workers.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.ready.Broadcast()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Client) worker() {
	defer c.wg.Done()
	for {
		t, ok := c.next()
		if !ok {
			return
		}
		t.future.resolve(c.call(t.req))
	}
}

// next waits for a queued task. It reports false once the client is closed
// and the queue is empty.
func (c *Client) next() (task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 && !c.closed {
		c.ready.Wait()
	}
	if len(c.queue) == 0 {
		return task{}, false
	}
	t := c.queue[0]
	c.queue[0] = task{}
	c.queue = c.queue[1:]
	return t, true
}

func (c *Client) call(req *message.Message) (string, error) {
	ctx := context.Background()
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	resp, err := c.caller.Call(ctx, req)
	if err != nil {
		c.logger.Warn("call failed", zap.String("operation", req.Operation), zap.Error(err))
		return "", errors.Trace(err)
	}
	res, err := message.ResultOf(resp)
	if err != nil {
		return "", errors.Annotatef(err, "response to %s", req.Operation)
	}
	if !res.IsOk() {
		return "", &BusinessError{Operation: req.Operation, Message: res.Value()}
	}
	return res.Value(), nil
}
