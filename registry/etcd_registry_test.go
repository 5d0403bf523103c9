package registry

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

const etcdEndpoint = "localhost:2379"

// newTestEtcd skips the test when no etcd is listening locally.
func newTestEtcd(t *testing.T) *EtcdRegistry {
	t.Helper()
	reg, err := NewEtcdRegistry([]string{etcdEndpoint}, time.Second, zaptest.NewLogger(t))
	if err != nil {
		t.Skipf("etcd unavailable: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := reg.client.Status(ctx, etcdEndpoint); err != nil {
		reg.Close()
		t.Skipf("etcd unavailable: %v", err)
	}
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestRegisterAndDiscover(t *testing.T) {
	reg := newTestEtcd(t)
	ctx := context.Background()

	inst1 := ServiceInstance{Addr: "127.0.0.1:8001", Weight: 10, Version: "1.0"}
	inst2 := ServiceInstance{Addr: "127.0.0.1:8002", Weight: 5, Version: "1.0"}

	if err := reg.Register(ctx, "MovieRentalsTest", inst1, 10); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(ctx, "MovieRentalsTest", inst2, 10); err != nil {
		t.Fatal(err)
	}

	instances, err := reg.Discover(ctx, "MovieRentalsTest")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 {
		t.Fatalf("expect 2 instances, got %d", len(instances))
	}

	if err := reg.Deregister(ctx, "MovieRentalsTest", inst1.Addr); err != nil {
		t.Fatal(err)
	}

	instances, err = reg.Discover(ctx, "MovieRentalsTest")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 1 {
		t.Fatalf("expect 1 instance after deregister, got %d", len(instances))
	}
	if instances[0].Addr != inst2.Addr {
		t.Fatalf("expect %s, got %s", inst2.Addr, instances[0].Addr)
	}

	reg.Deregister(ctx, "MovieRentalsTest", inst2.Addr)
}

func TestEtcdWatch(t *testing.T) {
	reg := newTestEtcd(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := reg.Watch(ctx, "MovieRentalsWatch")
	// give the watcher time to subscribe before writing
	time.Sleep(100 * time.Millisecond)
	inst := ServiceInstance{Addr: "127.0.0.1:9001", Weight: 1}
	if err := reg.Register(ctx, "MovieRentalsWatch", inst, 10); err != nil {
		t.Fatal(err)
	}
	defer reg.Deregister(context.Background(), "MovieRentalsWatch", inst.Addr)

	select {
	case got := <-updates:
		if len(got) != 1 || got[0].Addr != inst.Addr {
			t.Fatalf("expect [%s], got %v", inst.Addr, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no watch update")
	}
}
