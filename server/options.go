package server

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"movierentals/metrics"
	"movierentals/middleware"
	"movierentals/registry"
)

const (
	DefaultQueueSize   = 64
	DefaultConnTimeout = 30 * time.Second
)

type options struct {
	logger        *zap.Logger
	workers       int
	queueSize     int
	connTimeout   time.Duration
	middlewares   []middleware.Middleware
	replyUnknown  bool
	metrics       *metrics.Collector
	registry      registry.Registry
	advertiseAddr string // routable address stored in the registry
}

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		workers:     runtime.NumCPU(),
		queueSize:   DefaultQueueSize,
		connTimeout: DefaultConnTimeout,
	}
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithWorkers sets how many connections are served at once. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets how many accepted connections may wait for a worker.
// Connections beyond that are closed without a response.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queueSize = n
		}
	}
}

// WithConnTimeout bounds the time a connection may take to send its request
// and receive the response. Zero disables the deadline.
func WithConnTimeout(d time.Duration) Option {
	return func(o *options) { o.connTimeout = d }
}

// WithMiddleware appends middlewares; the first one is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, mws...) }
}

// WithUnknownOperationReply makes the server answer a request for an
// unregistered operation with an error response instead of closing the
// connection silently.
func WithUnknownOperationReply(reply bool) Option {
	return func(o *options) { o.replyUnknown = reply }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithRegistry registers the server under ServiceName at advertiseAddr while
// it serves.
func WithRegistry(reg registry.Registry, advertiseAddr string) Option {
	return func(o *options) {
		o.registry = reg
		o.advertiseAddr = advertiseAddr
	}
}
