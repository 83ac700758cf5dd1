// Package prom implements the observability hooks with Prometheus
// collectors.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/brainboard/pkg/observability"
)

const namespace = "brainboard"

// Metrics holds the collectors. It implements every hook interface.
type Metrics struct {
	batches  prometheus.Counter
	ops      prometheus.Counter
	applyDur prometheus.Histogram
	history  *prometheus.CounterVec

	templates   *prometheus.CounterVec
	templateDur *prometheus.HistogramVec

	storeOps  *prometheus.CounterVec
	storeDur  *prometheus.HistogramVec
	storeSize prometheus.Histogram

	requests   *prometheus.CounterVec
	requestDur *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		batches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "board", Name: "batches_total",
			Help: "Batches committed to boards.",
		}),
		ops: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "board", Name: "ops_total",
			Help: "Layer operations that took effect.",
		}),
		applyDur: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "board", Name: "apply_seconds",
			Help:    "Time to apply and persist a batch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		history: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "board", Name: "history_total",
			Help: "Undo and redo requests by outcome.",
		}, []string{"action", "result"}),

		templates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "template", Name: "runs_total",
			Help: "Template generations and reflows.",
		}, []string{"template", "kind", "result"}),
		templateDur: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "template", Name: "seconds",
			Help:    "Time to build a template batch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"template", "kind"}),

		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "store", Name: "operations_total",
			Help: "Document loads and saves by backend.",
		}, []string{"backend", "op", "result"}),
		storeDur: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "store", Name: "seconds",
			Help:    "Backend latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "op"}),
		storeSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "store", Name: "document_layers",
			Help:    "Layers per saved document.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),

		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "API requests by route and status.",
		}, []string{"method", "route", "code"}),
		requestDur: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_seconds",
			Help:    "API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m for every hook category.
func (m *Metrics) Register() {
	observability.SetBoardHooks(m)
	observability.SetTemplateHooks(m)
	observability.SetStoreHooks(m)
	observability.SetHTTPHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "empty"
}

func (m *Metrics) OnApply(_ context.Context, _ string, ops int, d time.Duration) {
	m.batches.Inc()
	m.ops.Add(float64(ops))
	m.applyDur.Observe(d.Seconds())
}

func (m *Metrics) OnUndo(_ context.Context, _ string, ok bool) {
	m.history.WithLabelValues("undo", outcome(ok)).Inc()
}

func (m *Metrics) OnRedo(_ context.Context, _ string, ok bool) {
	m.history.WithLabelValues("redo", outcome(ok)).Inc()
}

func (m *Metrics) OnGenerate(_ context.Context, template string, _ int, d time.Duration, err error) {
	m.templates.WithLabelValues(template, "generate", result(err)).Inc()
	m.templateDur.WithLabelValues(template, "generate").Observe(d.Seconds())
}

func (m *Metrics) OnReflow(_ context.Context, template string, _ int, d time.Duration, err error) {
	m.templates.WithLabelValues(template, "reflow", result(err)).Inc()
	m.templateDur.WithLabelValues(template, "reflow").Observe(d.Seconds())
}

func (m *Metrics) OnLoad(_ context.Context, backend string, d time.Duration, err error) {
	m.storeOps.WithLabelValues(backend, "load", result(err)).Inc()
	m.storeDur.WithLabelValues(backend, "load").Observe(d.Seconds())
}

func (m *Metrics) OnSave(_ context.Context, backend string, size int, d time.Duration, err error) {
	m.storeOps.WithLabelValues(backend, "save", result(err)).Inc()
	m.storeDur.WithLabelValues(backend, "save").Observe(d.Seconds())
	if err == nil {
		m.storeSize.Observe(float64(size))
	}
}

func (m *Metrics) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDur.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.BoardHooks    = (*Metrics)(nil)
	_ observability.TemplateHooks = (*Metrics)(nil)
	_ observability.StoreHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
