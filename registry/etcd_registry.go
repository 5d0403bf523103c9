package registry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/juju/errors"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

// KeyPrefix is the root of every key this package writes:
//
//	/movierentals/{service}/{addr} -> JSON ServiceInstance
const KeyPrefix = "/movierentals/"

// EtcdRegistry implements Registry on etcd v3. Entries are attached to a TTL
// lease kept alive in the background, so a crashed server disappears once
// its lease expires.
type EtcdRegistry struct {
	client *clientv3.Client
	logger *zap.Logger

	mu     sync.Mutex
	leases map[string]context.CancelFunc // key -> stops its KeepAlive
}

func NewEtcdRegistry(endpoints []string, dialTimeout time.Duration, logger *zap.Logger) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
		Logger:      logger.Named("etcd"),
	})
	if err != nil {
		return nil, errors.Annotatef(err, "connecting to etcd %v", endpoints)
	}
	return &EtcdRegistry{client: c, logger: logger, leases: make(map[string]context.CancelFunc)}, nil
}

func serviceKey(serviceName, addr string) string {
	return KeyPrefix + serviceName + "/" + addr
}

// Register stores instance under a lease of ttl seconds and renews it until
// Deregister or Close.
func (r *EtcdRegistry) Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error {
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return errors.Annotate(err, "granting lease")
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return errors.Trace(err)
	}

	key := serviceKey(serviceName, instance.Addr)
	if _, err := r.client.Put(ctx, key, string(val), clientv3.WithLease(lease.ID)); err != nil {
		return errors.Annotatef(err, "registering %s", key)
	}

	// The keepalive outlives ctx, which only bounds the registration itself.
	keepCtx, cancel := context.WithCancel(context.Background())
	ch, err := r.client.KeepAlive(keepCtx, lease.ID)
	if err != nil {
		cancel()
		return errors.Annotate(err, "keeping lease alive")
	}

	r.mu.Lock()
	if prev, ok := r.leases[key]; ok {
		prev()
	}
	r.leases[key] = cancel
	r.mu.Unlock()

	go func() {
		for range ch {
		}
		r.logger.Debug("lease keepalive stopped", zap.String("key", key))
	}()
	r.logger.Info("registered service instance", zap.String("key", key), zap.Int64("ttl", ttl))
	return nil
}

func (r *EtcdRegistry) Deregister(ctx context.Context, serviceName string, addr string) error {
	key := serviceKey(serviceName, addr)
	r.mu.Lock()
	if cancel, ok := r.leases[key]; ok {
		cancel()
		delete(r.leases, key)
	}
	r.mu.Unlock()

	if _, err := r.client.Delete(ctx, key); err != nil {
		return errors.Annotatef(err, "deregistering %s", key)
	}
	r.logger.Info("deregistered service instance", zap.String("key", key))
	return nil
}

// Watch re-reads the instance list on every change under the service prefix.
func (r *EtcdRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)
	prefix := KeyPrefix + serviceName + "/"

	go func() {
		defer close(ch)
		for range r.client.Watch(ctx, prefix, clientv3.WithPrefix()) {
			instances, err := r.Discover(ctx, serviceName)
			if err != nil {
				r.logger.Warn("refreshing instances", zap.String("service", serviceName), zap.Error(err))
				continue
			}
			sendLatest(ch, instances)
		}
	}()

	return ch
}

func (r *EtcdRegistry) Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error) {
	prefix := KeyPrefix + serviceName + "/"

	resp, err := r.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, errors.Annotatef(err, "discovering %s", serviceName)
	}

	instances := make([]ServiceInstance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var instance ServiceInstance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			r.logger.Warn("skipping malformed instance", zap.ByteString("key", kv.Key), zap.Error(err))
			continue
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// Close stops every keepalive and closes the etcd client.
func (r *EtcdRegistry) Close() error {
	r.mu.Lock()
	for key, cancel := range r.leases {
		cancel()
		delete(r.leases, key)
	}
	r.mu.Unlock()
	return errors.Trace(r.client.Close())
}
