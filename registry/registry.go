// Package registry tracks which addresses serve a named service.
package registry

import (
	"context"

	"github.com/juju/errors"
)

// ErrNoInstances is returned when a service has no registered instance.
const ErrNoInstances = errors.ConstError("no service instances")

type ServiceInstance struct {
	Addr    string
	Weight  int // Weight for load balancing
	Version string
}

type Registry interface {
	Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error
	Deregister(ctx context.Context, serviceName string, addr string) error
	Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error)
	// Watch emits the full instance list whenever it changes. The channel is
	// closed when ctx ends.
	Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance
}

// sendLatest replaces any unread list in ch with instances.
func sendLatest(ch chan []ServiceInstance, instances []ServiceInstance) {
	for {
		select {
		case ch <- instances:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
