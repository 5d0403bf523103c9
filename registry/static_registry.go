package registry

import (
	"context"
	"sync"
)

// StaticRegistry is an in-process registry for fixed deployments, such as a
// single server on a known host and port. The ttl passed to Register is
// ignored.
type StaticRegistry struct {
	mu        sync.Mutex
	instances map[string][]ServiceInstance
	watchers  map[string][]chan []ServiceInstance
}

// NewStaticRegistry returns a registry in which serviceName is served by addrs.
func NewStaticRegistry(serviceName string, addrs ...string) *StaticRegistry {
	r := &StaticRegistry{
		instances: make(map[string][]ServiceInstance),
		watchers:  make(map[string][]chan []ServiceInstance),
	}
	for _, addr := range addrs {
		r.instances[serviceName] = append(r.instances[serviceName], ServiceInstance{Addr: addr, Weight: 1})
	}
	return r
}

func (r *StaticRegistry) Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.instances[serviceName]
	for i, inst := range list {
		if inst.Addr == instance.Addr {
			list[i] = instance
			r.notify(serviceName)
			return nil
		}
	}
	r.instances[serviceName] = append(list, instance)
	r.notify(serviceName)
	return nil
}

func (r *StaticRegistry) Deregister(ctx context.Context, serviceName string, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.instances[serviceName]
	kept := list[:0]
	for _, inst := range list {
		if inst.Addr != addr {
			kept = append(kept, inst)
		}
	}
	r.instances[serviceName] = kept
	r.notify(serviceName)
	return nil
}

func (r *StaticRegistry) Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(serviceName), nil
}

func (r *StaticRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)
	r.mu.Lock()
	r.watchers[serviceName] = append(r.watchers[serviceName], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		list := r.watchers[serviceName]
		for i, w := range list {
			if w == ch {
				r.watchers[serviceName] = append(list[:i], list[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

// notify must be called with mu held.
func (r *StaticRegistry) notify(serviceName string) {
	for _, ch := range r.watchers[serviceName] {
		sendLatest(ch, r.snapshot(serviceName))
	}
}

func (r *StaticRegistry) snapshot(serviceName string) []ServiceInstance {
	return append([]ServiceInstance(nil), r.instances[serviceName]...)
}
