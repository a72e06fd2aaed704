package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// Namespace prefixes every metric name.
const Namespace = "domainflow"

// DispatchCollector counts dispatches per use case and outcome and records
// their duration. It implements orchestration.Observer.
type DispatchCollector struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewDispatchCollector creates the collectors and registers them on reg.
func NewDispatchCollector(reg prometheus.Registerer) (*DispatchCollector, error) {
	c := &DispatchCollector{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dispatch_total",
			Help:      "Number of use case dispatches by outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of use case dispatches.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"use_case"}),
	}
	for _, collector := range []prometheus.Collector{c.total, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveDispatch records one dispatch. The outcome label is "success" or
// the error kind reported by apperrors.KindOf.
func (c *DispatchCollector) ObserveDispatch(useCase string, duration time.Duration, err error) {
	c.total.WithLabelValues(useCase, apperrors.KindOf(err)).Inc()
	c.duration.WithLabelValues(useCase).Observe(duration.Seconds())
}
