// Package metrics defines the prometheus collectors exported by the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout outcomes recorded by CheckoutAttempts.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// Metrics holds the service collectors, registered on a private registry.
type Metrics struct {
	CheckoutAttempts *prometheus.CounterVec
	ChargeDuration   *prometheus.HistogramVec
	Requests         *prometheus.CounterVec
	Latency          *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers the collectors under namespace.
func New(namespace string) *Metrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_attempts_total",
		Help:      "Checkout attempts by terminal outcome.",
	}, []string{"outcome"})
	charges := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_charge_duration_seconds",
		Help:      "Payment gateway charge latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"gateway", "status"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		checkouts,
		charges,
		requests,
		latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		CheckoutAttempts: checkouts,
		ChargeDuration:   charges,
		Requests:         requests,
		Latency:          latency,
		registry:         registry,
	}
}

// ObserveCheckout counts one checkout attempt ending in outcome.
func (m *Metrics) ObserveCheckout(outcome string) {
	m.CheckoutAttempts.WithLabelValues(outcome).Inc()
}

// ObserveCharge records the duration of one gateway charge.
func (m *Metrics) ObserveCharge(gateway, status string, d time.Duration) {
	m.ChargeDuration.WithLabelValues(gateway, status).Observe(d.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.Latency.WithLabelValues(route).Observe(d.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
