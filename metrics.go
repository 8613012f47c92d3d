package main

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
)

type metrics struct {
	lastRunTimestamp prometheus.Gauge
	resourcesTotal   *prometheus.GaugeVec
	waitPollsTotal   prometheus.Counter
	changesTotal     changeCounter
}

func newMetrics() *metrics {
	return &metrics{
		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "aws_cloud_adapter",
				Subsystem: "cli",
				Name:      "last_run_timestamp_seconds",
				Help:      "Timestamp of the last successful command",
			},
		),
		resourcesTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "aws_cloud_adapter",
				Subsystem: "cli",
				Name:      "resources_total",
				Help:      "Number of resources returned by the last listing",
			},
			[]string{"resource_type"},
		),
		waitPollsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "aws_cloud_adapter",
				Subsystem: "cli",
				Name:      "wait_polls_total",
				Help:      "Number of state polls done while waiting for a resource",
			},
		),
		changesTotal: changeCounter{prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aws_cloud_adapter",
				Subsystem: "cli",
				Name:      "changes_total",
				Help:      "Number of clusters, snapshots and load balancers changed",
			},
			[]string{"resource_type", "operation"},
		)},
	}
}

type changeCounter struct {
	*prometheus.CounterVec
}

func (c changeCounter) created(resourceType string) {
	c.WithLabelValues(resourceType, "create").Inc()
}

func (c changeCounter) updated(resourceType string) {
	c.WithLabelValues(resourceType, "update").Inc()
}

func (c changeCounter) deleted(resourceType string) {
	c.WithLabelValues(resourceType, "delete").Inc()
}

func (m *metrics) listed(resourceType string, n int) {
	m.resourcesTotal.WithLabelValues(resourceType).Set(float64(n))
}

func (m *metrics) register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.lastRunTimestamp,
		m.resourcesTotal,
		m.waitPollsTotal,
		m.changesTotal,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return aws.RegisterMetrics(r)
}

// serve exposes the default registry on address until the process exits.
func (m *metrics) serve(address string) {
	if err := m.register(prometheus.DefaultRegisterer); err != nil {
		log.Errorf("unable to register metrics: %v", err)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(address, mux)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("metrics server stopped: %v", err)
	}
}
