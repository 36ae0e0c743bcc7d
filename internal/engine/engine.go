// Package engine provides the main orchestration logic for the Kinetrack motion tracking system.
package engine

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/adikms/kinetrack/internal/capture"
	"github.com/adikms/kinetrack/internal/detector"
	"github.com/adikms/kinetrack/internal/metrics"
	"github.com/adikms/kinetrack/internal/notify"
	"github.com/adikms/kinetrack/internal/store"
	"github.com/adikms/kinetrack/internal/track"
)

// Config holds configuration options for the engine.
type Config struct {
	Store    *store.Store
	Metrics  *metrics.Metrics
	Notifier *notify.Notifier

	CameraID int
	Track    track.Config

	// MotionGate enables frame-difference gating: when no motion is seen,
	// the detector is skipped for that cycle and tracks coast.
	MotionGate   bool
	MotionThresh float64
}

// Engine orchestrates the capture, detection and tracking cycle. Each tick
// it reads a frame, runs the detector and advances the track set, then
// publishes the new snapshot to subscribers.
type Engine struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionGate
	detector detector.Detector

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	snapshot    []track.Object
	lastAction  map[string]track.Action
	sessionID   string
	subscribers []func([]track.Object)
}

// New creates a new Engine with the given configuration.
func New(config Config) *Engine {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	e := &Engine{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionGate(motionThreshold),
		enabled:    true,
		lastAction: make(map[string]track.Action),
	}

	// Try the ONNX model first, fall back to the mock detector
	if d, err := detector.NewONNXDetector(detector.DefaultConfig()); err == nil {
		e.detector = d
		log.Println("Using ONNX object detection")
	} else {
		log.Printf("ONNX model not available (%v), using mock detector", err)
		e.detector = detector.NewMockDetector()
	}

	return e
}

// SetEnabled enables or disables detection. While disabled the cycle loop
// keeps running but ticks are skipped and the snapshot is left as is.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether detection is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetDetector sets the object detector implementation to use.
func (e *Engine) SetDetector(d detector.Detector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detector = d
}

// SetCamera sets the camera implementation to use. Call before Start.
func (e *Engine) SetCamera(c capture.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = c
}

// Start opens the camera, records a new session and begins the cycle loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Don't start if already running
	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}

	intervalMs := e.config.Track.DetectionIntervalMs
	if intervalMs <= 0 {
		intervalMs = track.DefaultConfig().DetectionIntervalMs
	}
	e.camera.SetFPS(1000 / intervalMs)

	e.sessionID = uuid.NewString()
	if e.config.Store != nil {
		if _, err := e.config.Store.Sessions().Start(e.sessionID); err != nil {
			log.Printf("Failed to record session start: %v", err)
		}
	}

	e.stopCh = make(chan struct{})
	go e.runLoop(e.stopCh, intervalMs)

	log.Println("Tracking engine started")
	return nil
}

// Stop halts the cycle loop, ends the session and releases resources.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}

	if e.config.Store != nil && e.sessionID != "" {
		if err := e.config.Store.Sessions().End(e.sessionID); err != nil {
			log.Printf("Failed to record session end: %v", err)
		}
		e.sessionID = ""
	}

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	e.motion.Close()

	if e.detector != nil {
		if err := e.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking engine stopped")
}

// Snapshot returns a copy of the current track set.
func (e *Engine) Snapshot() []track.Object {
	e.mu.RLock()
	defer e.mu.RUnlock()

	objects := make([]track.Object, len(e.snapshot))
	copy(objects, e.snapshot)
	return objects
}

// SessionID returns the id of the current session, or "" when stopped.
func (e *Engine) SessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// Subscribe registers a callback invoked with each new snapshot. Callbacks
// run on the cycle goroutine and must not block.
func (e *Engine) Subscribe(fn func([]track.Object)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// Camera returns the camera instance.
func (e *Engine) Camera() capture.Camera {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.camera
}

// MotionGate returns the motion gate instance.
func (e *Engine) MotionGate() *capture.MotionGate {
	return e.motion
}

// Detector returns the object detector.
func (e *Engine) Detector() detector.Detector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.detector
}
