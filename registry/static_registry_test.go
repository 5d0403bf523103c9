package registry

import (
	"context"
	"testing"
	"time"
)

func TestStaticRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewStaticRegistry("MovieRentals", "localhost:1234")

	got, err := reg.Discover(ctx, "MovieRentals")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Addr != "localhost:1234" {
		t.Fatalf("expect [localhost:1234], got %v", got)
	}

	if err := reg.Register(ctx, "MovieRentals", ServiceInstance{Addr: "localhost:1235", Weight: 3}, 10); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(ctx, "MovieRentals", ServiceInstance{Addr: "localhost:1235", Weight: 5}, 10); err != nil {
		t.Fatal(err)
	}
	got, _ = reg.Discover(ctx, "MovieRentals")
	if len(got) != 2 || got[1].Weight != 5 {
		t.Fatalf("expect re-registration to replace the instance, got %v", got)
	}

	reg.Deregister(ctx, "MovieRentals", "localhost:1234")
	got, _ = reg.Discover(ctx, "MovieRentals")
	if len(got) != 1 || got[0].Addr != "localhost:1235" {
		t.Fatalf("expect [localhost:1235], got %v", got)
	}

	if got, _ := reg.Discover(ctx, "Unknown"); len(got) != 0 {
		t.Fatalf("expect no instances, got %v", got)
	}
}

func TestStaticRegistryWatch(t *testing.T) {
	reg := NewStaticRegistry("MovieRentals", "localhost:1234")
	ctx, cancel := context.WithCancel(context.Background())

	updates := reg.Watch(ctx, "MovieRentals")
	reg.Register(context.Background(), "MovieRentals", ServiceInstance{Addr: "localhost:1235"}, 10)
	reg.Register(context.Background(), "MovieRentals", ServiceInstance{Addr: "localhost:1236"}, 10)

	// only the latest list is kept for a slow reader
	select {
	case got := <-updates:
		if len(got) != 3 {
			t.Fatalf("expect 3 instances, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no watch update")
	}

	cancel()
	select {
	case _, ok := <-updates:
		if ok {
			t.Fatal("expect closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed")
	}
}
