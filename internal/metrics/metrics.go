// Package metrics collects runtime counters for the Kinetrack engine and
// exposes them in Prometheus format.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all engine metrics. Counters are plain atomics so the hot
// cycle path never touches a mutex; Prometheus reads them lazily through
// gauge functions.
type Metrics struct {
	// Cycle accounting
	CyclesRun     atomic.Uint64
	CycleOverruns atomic.Uint64

	// Error counters
	FrameErrors    atomic.Uint64
	DetectorErrors atomic.Uint64

	// Detection and track accounting
	DetectionsSeen atomic.Uint64
	TracksActive   atomic.Uint64
	TracksCreated  atomic.Uint64
	EventsRecorded atomic.Uint64

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.register()
	return m
}

func (m *Metrics) register() {
	gauges := []struct {
		name string
		help string
		read func() uint64
	}{
		{"kinetrack_cycles_run_total", "Total detection cycles completed", m.CyclesRun.Load},
		{"kinetrack_cycle_overruns_total", "Cycles that ran longer than the detection interval", m.CycleOverruns.Load},
		{"kinetrack_frame_errors_total", "Camera frame read failures", m.FrameErrors.Load},
		{"kinetrack_detector_errors_total", "Detector invocation failures", m.DetectorErrors.Load},
		{"kinetrack_detections_seen_total", "Raw detections received from the detector", m.DetectionsSeen.Load},
		{"kinetrack_tracks_active", "Tracks in the current snapshot", m.TracksActive.Load},
		{"kinetrack_tracks_created_total", "New tracks created", m.TracksCreated.Load},
		{"kinetrack_events_recorded_total", "Action-transition events recorded", m.EventsRecorded.Load},
	}

	for _, g := range gauges {
		read := g.read
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: g.name, Help: g.help},
			func() float64 { return float64(read()) },
		))
	}
}

// Handler returns an http.Handler serving the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
