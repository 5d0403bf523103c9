package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"
	"sync"

	"movierentals/registry"
)

// ConsistentHashBalancer maps keys to instances on a hash ring, so the same
// operation keeps reaching the same server until the instance set changes.
// Each instance owns replicas virtual nodes to even out the ring.
type ConsistentHashBalancer struct {
	replicas int

	mu     sync.Mutex
	synced bool   // the ring follows the instances passed to Pick
	sig    string // addresses the ring was built from
	ring  []uint32
	nodes map[uint32]registry.ServiceInstance
}

func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: 100,
		nodes:    make(map[uint32]registry.ServiceInstance),
	}
}

// Add places an instance onto the ring.
func (b *ConsistentHashBalancer) Add(instance registry.ServiceInstance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.add(instance)
	b.sortRing()
}

func (b *ConsistentHashBalancer) add(instance registry.ServiceInstance) {
	for i := 0; i < b.replicas; i++ {
		hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", instance.Addr, i)))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = instance
	}
}

func (b *ConsistentHashBalancer) sortRing() {
	sort.Slice(b.ring, func(i, j int) bool { return b.ring[i] < b.ring[j] })
}

// rebuild must be called with mu held.
func (b *ConsistentHashBalancer) rebuild(instances []registry.ServiceInstance) {
	addrs := make([]string, len(instances))
	for i, inst := range instances {
		addrs[i] = inst.Addr
	}
	sort.Strings(addrs)
	sig := strings.Join(addrs, ",")
	if sig == b.sig {
		return
	}
	b.sig = sig
	b.ring = b.ring[:0]
	b.nodes = make(map[uint32]registry.ServiceInstance, len(instances)*b.replicas)
	for _, inst := range instances {
		b.add(inst)
	}
	b.sortRing()
}

// Pick hashes key and walks clockwise to the first virtual node. Once Pick
// has been given instances the ring is rebuilt whenever the set changes,
// and an empty set leaves no instance to pick. A balancer only ever fed by
// Add picks from the added instances when instances is empty.
func (b *ConsistentHashBalancer) Pick(key string, instances []registry.ServiceInstance) (registry.ServiceInstance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(instances) > 0 {
		b.synced = true
	}
	if b.synced {
		b.rebuild(instances)
	}
	if len(b.ring) == 0 {
		return registry.ServiceInstance{}, noInstances()
	}

	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
