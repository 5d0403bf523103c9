package client

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"movierentals/loadbalance"
	"movierentals/message"
	"movierentals/registry"
	"movierentals/server"
	"movierentals/transport"
)

func TestMultiServerDiscovery(t *testing.T) {
	logger := zaptest.NewLogger(t)
	reg := registry.NewStaticRegistry(server.ServiceName)

	var served [2]atomic.Int64
	for i := range served {
		count := &served[i]
		handlers := server.Handlers{}
		handlers.Register(message.OpGetAllMovies, func(ctx context.Context, req *message.Message) *message.Message {
			count.Add(1)
			return message.NewOK("")
		})

		lis, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		svr := server.NewServer(handlers,
			server.WithLogger(logger),
			server.WithWorkers(2),
			server.WithRegistry(reg, lis.Addr().String()))
		done := make(chan error, 1)
		go func() { done <- svr.Serve(lis) }()
		t.Cleanup(func() {
			if err := svr.Shutdown(2 * time.Second); err != nil {
				t.Errorf("shutdown: %v", err)
			}
			if err := <-done; err != nil {
				t.Errorf("serve: %v", err)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	resolver := transport.NewResolver(reg, server.ServiceName, &loadbalance.RoundRobinBalancer{}, logger)
	c := New(transport.NewClientTransport(resolver, logger), WithWorkers(1), WithLogger(logger))
	defer c.Close()

	// both servers register from Serve
	deadline := time.Now().Add(2 * time.Second)
	for {
		instances, _ := reg.Discover(ctx, server.ServiceName)
		if len(instances) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expect 2 registered servers, got %d", len(instances))
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err := resolver.Start(ctx); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if _, err := c.GetAllMovies().Get(); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	if a, b := served[0].Load(), served[1].Load(); a != 5 || b != 5 {
		t.Fatalf("expect 5 requests per server, got %d and %d", a, b)
	}
}
