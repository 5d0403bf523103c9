package loadbalance

import (
	"fmt"
	"testing"

	"github.com/juju/errors"

	"movierentals/registry"
)

var testInstances = []registry.ServiceInstance{
	{Addr: ":8001", Weight: 10, Version: "1.0"},
	{Addr: ":8002", Weight: 5, Version: "1.0"},
	{Addr: ":8003", Weight: 10, Version: "1.0"},
}

func TestRoundRobin(t *testing.T) {
	b := &RoundRobinBalancer{}

	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		inst, err := b.Pick("getAllMovies", testInstances)
		if err != nil {
			t.Fatal(err)
		}
		results[i] = inst.Addr
	}
	if results[0] != ":8001" || results[1] != ":8002" || results[2] != ":8003" {
		t.Fatalf("expect instances in order, got %v", results)
	}

	inst, _ := b.Pick("getAllMovies", testInstances)
	if inst.Addr != results[0] {
		t.Fatalf("expect wrap around to %s, got %s", results[0], inst.Addr)
	}
}

func TestEmptyInstances(t *testing.T) {
	for _, b := range []Balancer{&RoundRobinBalancer{}, &WeightedRandomBalancer{}, NewConsistentHashBalancer()} {
		_, err := b.Pick("getAllMovies", nil)
		if !errors.Is(err, registry.ErrNoInstances) {
			t.Fatalf("%s: expect ErrNoInstances, got %v", b.Name(), err)
		}
	}
}

func TestWeightedRandom(t *testing.T) {
	b := &WeightedRandomBalancer{}

	counts := map[string]int{}
	n := 10000
	for i := 0; i < n; i++ {
		inst, err := b.Pick("", testInstances)
		if err != nil {
			t.Fatal(err)
		}
		counts[inst.Addr]++
	}

	// weights are 10:5:10
	ratio := float64(counts[":8001"]) / float64(counts[":8002"])
	if ratio < 1.5 || ratio > 2.5 {
		t.Fatalf("weight ratio :8001/:8002 = %.2f, expect ~2.0", ratio)
	}
}

func TestWeightedRandomZeroWeights(t *testing.T) {
	b := &WeightedRandomBalancer{}
	inst, err := b.Pick("", []registry.ServiceInstance{{Addr: ":9000"}})
	if err != nil || inst.Addr != ":9000" {
		t.Fatalf("expect :9000, got %v (%v)", inst, err)
	}
}

func TestConsistentHash(t *testing.T) {
	b := NewConsistentHashBalancer()
	for _, inst := range testInstances {
		b.Add(inst)
	}

	inst1, _ := b.Pick("getAllMovies", nil)
	inst2, _ := b.Pick("getAllMovies", nil)
	if inst1.Addr != inst2.Addr {
		t.Fatalf("same key mapped to different instances: %s vs %s", inst1.Addr, inst2.Addr)
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		inst, _ := b.Pick(fmt.Sprintf("key-%d", i), nil)
		seen[inst.Addr] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expect at least 2 different instances, got %d", len(seen))
	}
}

func TestConsistentHashFollowsInstanceSet(t *testing.T) {
	b := NewConsistentHashBalancer()

	first, err := b.Pick("getAllMovies", testInstances)
	if err != nil {
		t.Fatal(err)
	}
	reordered := []registry.ServiceInstance{testInstances[2], testInstances[0], testInstances[1]}
	again, _ := b.Pick("getAllMovies", reordered)
	if again.Addr != first.Addr {
		t.Fatalf("expect order not to matter, got %s then %s", first.Addr, again.Addr)
	}

	only := []registry.ServiceInstance{{Addr: ":9000"}}
	inst, _ := b.Pick("getAllMovies", only)
	if inst.Addr != ":9000" {
		t.Fatalf("expect ring rebuilt to :9000, got %s", inst.Addr)
	}
}

func TestConsistentHashEmptiedInstanceSet(t *testing.T) {
	b := NewConsistentHashBalancer()
	if _, err := b.Pick("getAllMovies", testInstances); err != nil {
		t.Fatal(err)
	}
	inst, err := b.Pick("getAllMovies", nil)
	if !errors.Is(err, registry.ErrNoInstances) {
		t.Fatalf("expect ErrNoInstances after every instance left, got %v (%s)", err, inst.Addr)
	}
}

func TestConsistentHashAddedInstances(t *testing.T) {
	b := NewConsistentHashBalancer()
	b.Add(registry.ServiceInstance{Addr: ":9000"})
	inst, err := b.Pick("getAllMovies", nil)
	if err != nil || inst.Addr != ":9000" {
		t.Fatalf("expect :9000 from added instances, got %q (%v)", inst.Addr, err)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"RoundRobin", "WeightedRandom", "ConsistentHash"} {
		b, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		if b.Name() != name {
			t.Fatalf("expect %s, got %s", name, b.Name())
		}
	}
	if _, err := New("Random"); !errors.Is(err, errors.NotValid) {
		t.Fatalf("expect NotValid, got %v", err)
	}
}
