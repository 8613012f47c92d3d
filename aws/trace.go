package aws

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aws_cloud_adapter",
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Number of adapter operations sent to AWS",
		},
		[]string{"operation"},
	)
	apiErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aws_cloud_adapter",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Number of adapter operations that failed",
		},
		[]string{"operation", "code"},
	)
	apiCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aws_cloud_adapter",
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Duration of adapter operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RegisterMetrics registers the API trace metrics with r.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{apiCallsTotal, apiErrorsTotal, apiCallDuration} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// apiTrace follows one adapter operation, which may span several AWS calls.
type apiTrace struct {
	operation string
	start     time.Time
	log       *log.Entry
}

func beginTrace(operation string) *apiTrace {
	apiCallsTotal.WithLabelValues(operation).Inc()
	t := &apiTrace{
		operation: operation,
		start:     time.Now(),
		log: log.WithFields(log.Fields{
			"operation": operation,
			"trace":     uuid.NewString(),
		}),
	}
	t.log.Debug("begin")
	return t
}

// fail records err against the trace and returns it as a cloud error.
func (t *apiTrace) fail(err error) error {
	err = wrapError(t.operation, err)
	code := errorCode(err)
	apiErrorsTotal.WithLabelValues(t.operation, code).Inc()
	t.log.WithField("code", code).Errorf("call failed: %v", err)
	return err
}

func (t *apiTrace) end() {
	d := time.Since(t.start)
	apiCallDuration.WithLabelValues(t.operation).Observe(d.Seconds())
	t.log.WithField("duration", d).Debug("end")
}
