package transport

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"movierentals/loadbalance"
	"movierentals/registry"
)

// AddrResolver chooses the server address for a call. key is the operation
// name.
type AddrResolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// StaticAddr always resolves to the same address.
type StaticAddr string

func (a StaticAddr) Resolve(ctx context.Context, key string) (string, error) {
	return string(a), nil
}

// Resolver picks among the instances a registry knows for one service.
// The instance list is cached and kept current by Watch once Start is
// called; without Start every Resolve asks the registry.
type Resolver struct {
	registry registry.Registry
	service  string
	balancer loadbalance.Balancer
	logger   *zap.Logger

	mu        sync.RWMutex
	instances []registry.ServiceInstance
	watching  bool
}

func NewResolver(reg registry.Registry, service string, balancer loadbalance.Balancer, logger *zap.Logger) *Resolver {
	return &Resolver{registry: reg, service: service, balancer: balancer, logger: logger}
}

// Start loads the instance list and follows registry updates until ctx
// ends.
func (r *Resolver) Start(ctx context.Context) error {
	updates := r.registry.Watch(ctx, r.service)
	instances, err := r.registry.Discover(ctx, r.service)
	if err != nil {
		return errors.Annotatef(err, "discovering %s", r.service)
	}
	r.mu.Lock()
	r.instances = instances
	r.watching = true
	r.mu.Unlock()

	go func() {
		for instances := range updates {
			r.logger.Info("service instances changed",
				zap.String("service", r.service),
				zap.Int("instances", len(instances)))
			r.mu.Lock()
			r.instances = instances
			r.mu.Unlock()
		}
		r.mu.Lock()
		r.watching = false
		r.mu.Unlock()
	}()
	return nil
}

func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	instances, watching := r.instances, r.watching
	r.mu.RUnlock()

	if !watching {
		var err error
		if instances, err = r.registry.Discover(ctx, r.service); err != nil {
			return "", errors.Annotatef(err, "discovering %s", r.service)
		}
	}
	inst, err := r.balancer.Pick(key, instances)
	if err != nil {
		return "", errors.Annotatef(err, "service %s", r.service)
	}
	return inst.Addr, nil
}
