// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a small facade over prometheus/client_golang:
// callers ask for a named meter without caring whether metrics
// collection has been switched on yet. Before InitializePrometheusMetrics
// runs, every meter is a no-op, so instrumentation can be sprinkled
// through startup code that runs before configuration decides whether
// metrics are even wanted.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "thor"
	subsystem = "metrics"
)

// GaugeMeter, GaugeVecMeter, CountMeter, CountVecMeter, HistogramMeter
// and HistogramVecMeter are the meter shapes callers use; which
// concrete type backs them depends on whether Prometheus collection is
// active.
type (
	GaugeMeter        interface{ Add(int64) }
	GaugeVecMeter     interface{ AddWithLabel(int64, map[string]string) }
	CountMeter        interface{ Add(int64) }
	CountVecMeter     interface{ AddWithLabel(int64, map[string]string) }
	HistogramMeter    interface{ Observe(int64) }
	HistogramVecMeter interface{ ObserveWithLabels(int64, map[string]string) }
)

type backend interface {
	gauge(name string) GaugeMeter
	gaugeVec(name string, labels []string) GaugeVecMeter
	counter(name string) CountMeter
	counterVec(name string, labels []string) CountVecMeter
	histogram(name string, buckets []float64) HistogramMeter
	histogramVec(name string, labels []string, buckets []float64) HistogramVecMeter
}

var (
	metricsMu sync.RWMutex
	metrics   backend = defaultNoopMetrics()
)

func currentBackend() backend {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return metrics
}

// InitializePrometheusMetrics switches every subsequently requested
// meter to a real Prometheus-backed one, registered against the default
// registry. Meters already handed out as no-ops stay no-ops; callers
// that want to observe real values should request meters lazily (see
// LazyLoadGauge and friends) or only after this has run.
func InitializePrometheusMetrics() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metrics = newPromMetrics()
}

// HTTPHandler serves the Prometheus exposition format once collection is
// active, or 404s beforehand — there is nothing to scrape yet.
func HTTPHandler() http.Handler {
	if _, ok := currentBackend().(*noopMeters); ok {
		return http.NotFoundHandler()
	}
	return promhttp.Handler()
}

func Gauge(name string) GaugeMeter { return currentBackend().gauge(name) }
func GaugeVec(name string, labels []string) GaugeVecMeter {
	return currentBackend().gaugeVec(name, labels)
}
func Counter(name string) CountMeter { return currentBackend().counter(name) }
func CounterVec(name string, labels []string) CountVecMeter {
	return currentBackend().counterVec(name, labels)
}
func Histogram(name string, buckets []float64) HistogramMeter {
	return currentBackend().histogram(name, buckets)
}
func HistogramVec(name string, labels []string, buckets []float64) HistogramVecMeter {
	return currentBackend().histogramVec(name, labels, buckets)
}

// The LazyLoad* functions defer resolving a meter until first call,
// letting code built and wired before InitializePrometheusMetrics still
// end up reporting through the real backend once it's switched on.
func LazyLoadGauge(name string) func() GaugeMeter {
	return func() GaugeMeter { return Gauge(name) }
}
func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return func() GaugeVecMeter { return GaugeVec(name, labels) }
}
func LazyLoadCounter(name string) func() CountMeter {
	return func() CountMeter { return Counter(name) }
}
func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return func() CountVecMeter { return CounterVec(name, labels) }
}
func LazyLoadHistogram(name string, buckets []float64) func() HistogramMeter {
	return func() HistogramMeter { return Histogram(name, buckets) }
}
func LazyLoadHistogramVec(name string, labels []string, buckets []float64) func() HistogramVecMeter {
	return func() HistogramVecMeter { return HistogramVec(name, labels, buckets) }
}

// promMetrics lazily creates and caches one Prometheus collector per
// name, registering each against the default registry the first time
// it's asked for.
type promMetrics struct {
	mu            sync.Mutex
	gauges        map[string]*promGaugeMeter
	gaugeVecs     map[string]*promGaugeVecMeter
	counters      map[string]*promCountMeter
	counterVecs   map[string]*promCountVecMeter
	histograms    map[string]*promHistogramMeter
	histogramVecs map[string]*promHistogramVecMeter
}

func newPromMetrics() *promMetrics {
	return &promMetrics{
		gauges:        map[string]*promGaugeMeter{},
		gaugeVecs:     map[string]*promGaugeVecMeter{},
		counters:      map[string]*promCountMeter{},
		counterVecs:   map[string]*promCountVecMeter{},
		histograms:    map[string]*promHistogramMeter{},
		histogramVecs: map[string]*promHistogramVecMeter{},
	}
}

func (p *promMetrics) gauge(name string) GaugeMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gauges[name]; ok {
		return m
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: name})
	prometheus.MustRegister(g)
	m := &promGaugeMeter{g: g}
	p.gauges[name] = m
	return m
}

func (p *promMetrics) gaugeVec(name string, labels []string) GaugeVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gaugeVecs[name]; ok {
		return m
	}
	v := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: name}, labels)
	prometheus.MustRegister(v)
	m := &promGaugeVecMeter{v: v}
	p.gaugeVecs[name] = m
	return m
}

func (p *promMetrics) counter(name string) CountMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counters[name]; ok {
		return m
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: subsystem, Name: name})
	prometheus.MustRegister(c)
	m := &promCountMeter{c: c}
	p.counters[name] = m
	return m
}

func (p *promMetrics) counterVec(name string, labels []string) CountVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counterVecs[name]; ok {
		return m
	}
	v := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Subsystem: subsystem, Name: name}, labels)
	prometheus.MustRegister(v)
	m := &promCountVecMeter{v: v}
	p.counterVecs[name] = m
	return m
}

func (p *promMetrics) histogram(name string, buckets []float64) HistogramMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.histograms[name]; ok {
		return m
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Buckets: buckets})
	prometheus.MustRegister(h)
	m := &promHistogramMeter{h: h}
	p.histograms[name] = m
	return m
}

func (p *promMetrics) histogramVec(name string, labels []string, buckets []float64) HistogramVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.histogramVecs[name]; ok {
		return m
	}
	v := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Buckets: buckets}, labels)
	prometheus.MustRegister(v)
	m := &promHistogramVecMeter{v: v}
	p.histogramVecs[name] = m
	return m
}

type promGaugeMeter struct{ g prometheus.Gauge }

func (m *promGaugeMeter) Add(v int64) { m.g.Add(float64(v)) }

type promGaugeVecMeter struct{ v *prometheus.GaugeVec }

func (m *promGaugeVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Add(float64(v))
}

type promCountMeter struct{ c prometheus.Counter }

func (m *promCountMeter) Add(v int64) { m.c.Add(float64(v)) }

type promCountVecMeter struct{ v *prometheus.CounterVec }

func (m *promCountVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Add(float64(v))
}

type promHistogramMeter struct{ h prometheus.Histogram }

func (m *promHistogramMeter) Observe(v int64) { m.h.Observe(float64(v)) }

type promHistogramVecMeter struct{ v *prometheus.HistogramVec }

func (m *promHistogramVecMeter) ObserveWithLabels(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Observe(float64(v))
}

// noopMeters satisfies every meter interface with a method that does
// nothing, and is handed out for every name until InitializePrometheusMetrics
// runs.
type noopMeters struct{}

func defaultNoopMetrics() *noopMeters { return &noopMeters{} }

func (n *noopMeters) gauge(string) GaugeMeter                                       { return n }
func (n *noopMeters) gaugeVec(string, []string) GaugeVecMeter                       { return n }
func (n *noopMeters) counter(string) CountMeter                                     { return n }
func (n *noopMeters) counterVec(string, []string) CountVecMeter                     { return n }
func (n *noopMeters) histogram(string, []float64) HistogramMeter                    { return n }
func (n *noopMeters) histogramVec(string, []string, []float64) HistogramVecMeter    { return n }
func (n *noopMeters) Add(int64)                                                     {}
func (n *noopMeters) AddWithLabel(int64, map[string]string)                         {}
func (n *noopMeters) Observe(int64)                                                 {}
func (n *noopMeters) ObserveWithLabels(int64, map[string]string)                    {}
