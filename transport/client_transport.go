// Package transport carries one request to a server and brings back its
// response. Every call opens a fresh TCP connection:
//
//	Resolve(operation) → dial → Encode(request) → Decode(response) → close
package transport

import (
	"context"
	"net"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"movierentals/message"
	"movierentals/protocol"
)

// ErrTransport reports a failure to reach the server or to exchange bytes
// with it. A response that arrives but is malformed is reported as
// protocol.ErrFraming instead.
const ErrTransport = errors.ConstError("transport failure")

// DefaultDialTimeout bounds connection setup when the call context has no
// earlier deadline.
const DefaultDialTimeout = 5 * time.Second

// Caller performs one request/response exchange.
type Caller interface {
	Call(ctx context.Context, req *message.Message) (*message.Message, error)
}

// ClientTransport is a Caller over TCP. It is safe for concurrent use; calls
// share nothing but the resolver.
type ClientTransport struct {
	resolver AddrResolver
	dialer   net.Dialer
	logger   *zap.Logger
}

func NewClientTransport(resolver AddrResolver, logger *zap.Logger) *ClientTransport {
	return &ClientTransport{
		resolver: resolver,
		dialer:   net.Dialer{Timeout: DefaultDialTimeout},
		logger:   logger,
	}
}

func transportError(err error, format string, args ...any) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrTransport)
}

// Call sends req and waits for the response. The context's deadline, if
// any, bounds the whole exchange, and cancelling it aborts the call.
func (t *ClientTransport) Call(ctx context.Context, req *message.Message) (*message.Message, error) {
	if err := protocol.Validate(req); err != nil {
		return nil, err
	}

	addr, err := t.resolver.Resolve(ctx, req.Operation)
	if err != nil {
		return nil, transportError(err, "resolving server for %s", req.Operation)
	}

	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, transportError(err, "dialing %s", addr)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	// Unblock pending reads and writes as soon as ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := protocol.Encode(conn, req); err != nil {
		return nil, transportError(err, "sending %s to %s", req.Operation, addr)
	}

	resp, err := protocol.Decode(conn)
	if err != nil {
		if errors.Is(err, protocol.ErrFraming) {
			return nil, errors.Annotatef(err, "response to %s from %s", req.Operation, addr)
		}
		return nil, transportError(err, "receiving %s from %s", req.Operation, addr)
	}
	t.logger.Debug("call completed",
		zap.String("operation", req.Operation),
		zap.String("addr", addr),
		zap.String("status", resp.Operation))
	return resp, nil
}
