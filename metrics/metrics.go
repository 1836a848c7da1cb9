// Package metrics exposes simulation counters on a private Prometheus registry.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orrery"

type Collector struct {
	registry *prometheus.Registry

	ticks          prometheus.Counter
	dayAdvances    prometheus.Counter
	day            prometheus.Gauge
	daysPerFrame   prometheus.Gauge
	dragRotations  prometheus.Counter
	inputDropped   prometheus.Counter
	composeErrors  prometheus.Counter
	composeSeconds prometheus.Histogram
	revolutions    *prometheus.CounterVec
	streamClients  prometheus.Gauge
	framesSent     prometheus.Counter
	framesDropped  prometheus.Counter
}

// New creates a collector with all metrics registered
func New() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks processed",
		}),
		dayAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "day_advances_total",
			Help:      "Ticks that advanced the simulated day",
		}),
		day: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "day",
			Help:      "Current simulated day",
		}),
		daysPerFrame: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "days_per_frame",
			Help:      "Simulated days per frame step",
		}),
		dragRotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drag_rotations_total",
			Help:      "Incremental trackball rotations applied",
		}),
		inputDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_events_dropped_total",
			Help:      "Input events overwritten before the tick drained them",
		}),
		composeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compose_errors_total",
			Help:      "Frames dropped on unbalanced transform passes",
		}),
		composeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compose_duration_seconds",
			Help:      "Time spent composing a frame",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
		revolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revolutions_total",
			Help:      "Completed orbits observed",
		}, []string{"body"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Connected websocket clients",
		}),
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_frames_sent_total",
			Help:      "Frames written to websocket clients",
		}),
		framesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_frames_dropped_total",
			Help:      "Frames skipped by the broadcast limiter or full client buffers",
		}),
	}

	m.registry.MustRegister(
		m.ticks, m.dayAdvances, m.day, m.daysPerFrame,
		m.dragRotations, m.inputDropped, m.composeErrors, m.composeSeconds, m.revolutions,
		m.streamClients, m.framesSent, m.framesDropped,
	)
	return m
}

// Registry returns the private registry
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordTick counts a tick and the clock state after it
func (m *Collector) RecordTick(advanced bool, day, dpf float64) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	if advanced {
		m.dayAdvances.Inc()
	}
	m.day.Set(day)
	m.daysPerFrame.Set(dpf)
}

// RecordDrag counts applied trackball rotations
func (m *Collector) RecordDrag(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dragRotations.Add(float64(n))
}

// RecordInputDropped counts n events lost to a full input queue
func (m *Collector) RecordInputDropped(n uint64) {
	if m == nil || n == 0 {
		return
	}
	m.inputDropped.Add(float64(n))
}

// RecordCompose observes compose duration and failure
func (m *Collector) RecordCompose(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.composeSeconds.Observe(d.Seconds())
	if err != nil {
		m.composeErrors.Inc()
	}
}

// RecordRevolutions adds n completed orbits for body
func (m *Collector) RecordRevolutions(body string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.revolutions.WithLabelValues(body).Add(float64(n))
}

// SetStreamClients reports connected clients
func (m *Collector) SetStreamClients(n int) {
	if m == nil {
		return
	}
	m.streamClients.Set(float64(n))
}

// RecordFrameSent counts one frame written to a client
func (m *Collector) RecordFrameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}

// RecordFrameDropped counts one skipped frame
func (m *Collector) RecordFrameDropped() {
	if m == nil {
		return
	}
	m.framesDropped.Inc()
}
