package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatal(err)
	}

	c.ObserveRequest("getAllMovies", "ok", 10*time.Millisecond)
	c.ObserveRequest("getAllMovies", "ok", 20*time.Millisecond)
	c.ObserveRequest("getMovieById", "error", time.Millisecond)
	c.ConnectionRejected()
	c.DispatchError()
	c.DispatchError()

	if got := testutil.ToFloat64(c.requests.WithLabelValues("getAllMovies", "ok")); got != 2 {
		t.Fatalf("expect 2 ok getAllMovies, got %v", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues("getMovieById", "error")); got != 1 {
		t.Fatalf("expect 1 failed getMovieById, got %v", got)
	}
	if got := testutil.ToFloat64(c.rejected); got != 1 {
		t.Fatalf("expect 1 rejected connection, got %v", got)
	}
	if got := testutil.ToFloat64(c.dispatchErrors); got != 2 {
		t.Fatalf("expect 2 dispatch errors, got %v", got)
	}
	if n := testutil.CollectAndCount(c.duration); n != 2 {
		t.Fatalf("expect 2 duration series, got %d", n)
	}
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := NewCollector().Register(reg); err != nil {
		t.Fatal(err)
	}
	if err := NewCollector().Register(reg); err == nil {
		t.Fatal("expect duplicate registration error")
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveRequest("getAllMovies", "ok", time.Millisecond)
	c.ConnectionRejected()
	c.DispatchError()
}
