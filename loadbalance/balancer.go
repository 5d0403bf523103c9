// Package loadbalance picks which service instance receives a call.
//
//   - RoundRobin:      equal-capacity instances
//   - WeightedRandom:  instances of different capacity
//   - ConsistentHash:  the same key (operation name) sticks to one instance
package loadbalance

import (
	"github.com/juju/errors"

	"movierentals/registry"
)

// Balancer selects one instance per call. Implementations are safe for
// concurrent use.
type Balancer interface {
	// Pick selects one of instances. key identifies the call; balancers that
	// do not need affinity ignore it.
	Pick(key string, instances []registry.ServiceInstance) (registry.ServiceInstance, error)

	Name() string
}

// New returns the balancer with the given Name.
func New(name string) (Balancer, error) {
	switch name {
	case "", "RoundRobin":
		return &RoundRobinBalancer{}, nil
	case "WeightedRandom":
		return &WeightedRandomBalancer{}, nil
	case "ConsistentHash":
		return NewConsistentHashBalancer(), nil
	}
	return nil, errors.NotValidf("balancer %q", name)
}

func noInstances() error {
	return errors.Annotate(registry.ErrNoInstances, "picking instance")
}
