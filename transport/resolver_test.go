package transport

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"movierentals/loadbalance"
	"movierentals/registry"
)

func TestStaticAddr(t *testing.T) {
	addr, err := StaticAddr("localhost:1234").Resolve(context.Background(), "getAllMovies")
	if err != nil || addr != "localhost:1234" {
		t.Fatalf("expect localhost:1234, got %q (%v)", addr, err)
	}
}

func TestResolverWithoutWatch(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewStaticRegistry("MovieRentals", "10.0.0.1:1234", "10.0.0.2:1234")
	r := NewResolver(reg, "MovieRentals", &loadbalance.RoundRobinBalancer{}, zaptest.NewLogger(t))

	first, err := r.Resolve(ctx, "getAllMovies")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := r.Resolve(ctx, "getAllMovies")
	if first == second {
		t.Fatalf("expect round robin across instances, got %s twice", first)
	}
}

func TestResolverFollowsWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg := registry.NewStaticRegistry("MovieRentals", "10.0.0.1:1234")
	r := NewResolver(reg, "MovieRentals", loadbalance.NewConsistentHashBalancer(), zaptest.NewLogger(t))
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}

	addr, err := r.Resolve(ctx, "getAllMovies")
	if err != nil || addr != "10.0.0.1:1234" {
		t.Fatalf("expect 10.0.0.1:1234, got %q (%v)", addr, err)
	}

	reg.Register(ctx, "MovieRentals", registry.ServiceInstance{Addr: "10.0.0.2:1234"}, 10)
	reg.Deregister(ctx, "MovieRentals", "10.0.0.1:1234")

	deadline := time.Now().Add(2 * time.Second)
	for {
		addr, err = r.Resolve(ctx, "getAllMovies")
		if err == nil && addr == "10.0.0.2:1234" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expect resolver to follow the registry, got %q (%v)", addr, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
