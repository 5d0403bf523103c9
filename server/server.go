// Package server accepts connections and dispatches each request to the
// handler registered for its operation name.
//
// Request processing pipeline:
//
//	Accept conn → bounded queue → worker (one of N)
//	  → protocol.Decode → middleware chain → handler → protocol.Encode → close
//
// Each connection carries exactly one request and one response.
package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"movierentals/message"
	"movierentals/middleware"
	"movierentals/protocol"
	"movierentals/registry"
)

// ErrDispatch reports a request that could not be routed to a handler, or
// whose handler produced no response.
const ErrDispatch = errors.ConstError("dispatch failed")

// ServiceName is the name the server registers under in a registry.
const ServiceName = "MovieRentals"

// registrationTTL is the lease, in seconds, of a registry entry.
const registrationTTL = 10

type HandlerFunc = middleware.HandlerFunc

// Handlers maps operation names to handlers.
type Handlers map[string]HandlerFunc

// Register binds name to fn, replacing any earlier handler for name.
func (h Handlers) Register(name string, fn HandlerFunc) {
	h[name] = fn
}

// Server dispatches requests to a fixed table of handlers. The table is
// copied by NewServer and never changes afterwards.
type Server struct {
	handlers map[string]HandlerFunc
	routes   map[string]HandlerFunc // handlers wrapped in the middleware chain
	opts     options

	ctx    context.Context // passed to handlers; cancelled when Shutdown gives up
	cancel context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup // workers
	shutdown atomic.Bool
}

// NewServer builds a server for handlers. Every handler runs behind
// middleware.RecoverMiddleware, innermost, so a panicking handler answers
// "internal server error" and the server keeps serving.
func NewServer(handlers Handlers, opts ...Option) *Server {
	s := &Server{
		handlers: make(map[string]HandlerFunc, len(handlers)),
		opts:     defaultOptions(),
	}
	for name, h := range handlers {
		s.handlers[name] = h
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// ListenAndServe listens on the TCP address addr and calls Serve.
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Annotatef(err, "listening on %s", addr)
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis until Shutdown is called or Accept fails.
// It returns nil after Shutdown.
func (s *Server) Serve(lis net.Listener) error {
	// recovery sits next to the handler so a panic never reaches the worker
	mws := s.opts.middlewares[:len(s.opts.middlewares):len(s.opts.middlewares)]
	chain := middleware.Chain(append(mws, middleware.RecoverMiddleware(s.opts.logger))...)
	routes := make(map[string]HandlerFunc, len(s.handlers))
	for name, h := range s.handlers {
		routes[name] = chain(h)
	}

	s.mu.Lock()
	if s.shutdown.Load() {
		s.mu.Unlock()
		lis.Close()
		return nil
	}
	s.routes = routes
	s.listener = lis
	conns := make(chan net.Conn, s.opts.queueSize)
	s.wg.Add(s.opts.workers)
	s.mu.Unlock()

	for i := 0; i < s.opts.workers; i++ {
		go s.worker(conns)
	}
	// Workers exit once the queue is closed and drained.
	defer close(conns)

	if s.opts.registry != nil {
		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		err := s.opts.registry.Register(ctx, ServiceName, registry.ServiceInstance{
			Addr:   s.opts.advertiseAddr,
			Weight: s.opts.workers,
		}, registrationTTL)
		cancel()
		if err != nil {
			lis.Close()
			return errors.Annotate(err, "registering server")
		}
	}

	s.opts.logger.Info("serving",
		zap.Stringer("addr", lis.Addr()),
		zap.Int("workers", s.opts.workers),
		zap.Int("queue", s.opts.queueSize),
		zap.Int("operations", len(s.handlers)))

	for {
		conn, err := lis.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return nil
			}
			return errors.Annotate(err, "accepting connection")
		}
		select {
		case conns <- conn:
		default:
			s.opts.metrics.ConnectionRejected()
			s.opts.logger.Warn("accept queue full, rejecting connection",
				zap.Stringer("remote", conn.RemoteAddr()))
			conn.Close()
		}
	}
}

func (s *Server) worker(conns <-chan net.Conn) {
	defer s.wg.Done()
	for conn := range conns {
		s.handleConn(conn)
	}
}

// handleConn serves the single request carried by conn.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	logger := s.opts.logger.With(
		zap.String("conn", uuid.NewString()),
		zap.Stringer("remote", conn.RemoteAddr()))

	if s.opts.connTimeout > 0 {
		conn.SetDeadline(time.Now().Add(s.opts.connTimeout))
	}

	req, err := protocol.Decode(conn)
	if err != nil {
		logger.Debug("reading request", zap.Error(err))
		return
	}

	resp, err := s.dispatch(req)
	if err != nil {
		s.opts.metrics.DispatchError()
		logger.Warn("dispatching request", zap.String("operation", req.Operation), zap.Error(err))
		if resp == nil {
			return
		}
	}

	if err := protocol.Encode(conn, resp); err != nil {
		logger.Warn("writing response", zap.String("operation", req.Operation), zap.Error(err))
	}
}

// dispatch runs the handler for req. On failure it returns ErrDispatch and,
// when the server is configured to answer unknown operations, the reply to
// send anyway.
func (s *Server) dispatch(req *message.Message) (*message.Message, error) {
	h, ok := s.routes[req.Operation]
	if !ok {
		err := errors.Annotatef(ErrDispatch, "unknown operation %q", req.Operation)
		if s.opts.replyUnknown {
			return message.NewError("Unknown operation: " + req.Operation), err
		}
		return nil, err
	}
	resp := h(s.ctx, req)
	if resp == nil {
		return nil, errors.Annotatef(ErrDispatch, "operation %q produced no response", req.Operation)
	}
	return resp, nil
}

// Shutdown stops the server:
//  1. deregister from the registry so clients stop picking this address
//  2. close the listener
//  3. wait up to timeout for queued and in-flight connections to finish
//
// If the wait times out, the handlers' context is cancelled and an error is
// returned.
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.opts.registry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := s.opts.registry.Deregister(ctx, ServiceName, s.opts.advertiseAddr); err != nil {
			s.opts.logger.Warn("deregistering server", zap.Error(err))
		}
		cancel()
	}

	s.mu.Lock()
	s.shutdown.Store(true)
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		s.opts.logger.Info("server stopped")
		return nil
	case <-time.After(timeout):
		s.cancel()
		return errors.Errorf("timeout waiting for ongoing requests to finish")
	}
}
