package loadbalance

import (
	"math/rand"

	"movierentals/registry"
)

// WeightedRandomBalancer picks an instance with probability proportional to
// its Weight. A non-positive weight counts as 1.
type WeightedRandomBalancer struct{}

func weightOf(inst registry.ServiceInstance) int {
	if inst.Weight <= 0 {
		return 1
	}
	return inst.Weight
}

func (b *WeightedRandomBalancer) Pick(key string, instances []registry.ServiceInstance) (registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return registry.ServiceInstance{}, noInstances()
	}

	totalWeight := 0
	for _, v := range instances {
		totalWeight += weightOf(v)
	}

	r := rand.Intn(totalWeight)
	for _, v := range instances {
		r -= weightOf(v)
		if r < 0 {
			return v, nil
		}
	}
	return instances[len(instances)-1], nil
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
