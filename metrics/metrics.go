// Package metrics exposes Prometheus collectors for request dispatch.
package metrics

import (
	"time"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "movierentals"

// Collector groups the dispatch metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	rejected       prometheus.Counter
	dispatchErrors prometheus.Counter
}

func NewCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled, by operation and response status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent in the handler chain, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_rejected_total",
			Help:      "Connections closed because the accept queue was full.",
		}),
		dispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_errors_total",
			Help:      "Requests that named no registered operation or produced no response.",
		}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.requests, c.duration, c.rejected, c.dispatchErrors} {
		if err := reg.Register(col); err != nil {
			return errors.Annotate(err, "registering metrics")
		}
	}
	return nil
}

// ObserveRequest records one handled request. status is "ok" or "error".
func (c *Collector) ObserveRequest(operation, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(operation, status).Inc()
	c.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) ConnectionRejected() {
	if c == nil {
		return
	}
	c.rejected.Inc()
}

func (c *Collector) DispatchError() {
	if c == nil {
		return
	}
	c.dispatchErrors.Inc()
}
